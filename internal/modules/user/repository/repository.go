package repository

import (
	"context"
	"time"

	"cslab.kr/securityhub/internal/entity"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateWithConsent(ctx context.Context, user *entity.User, consent *entity.TosConsent) error
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	// FindActiveByEmail resolves an email to the matching active account.
	// Returns gorm.ErrRecordNotFound for withdrawn/suspended/unknown accounts.
	FindActiveByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	TouchLastLogin(ctx context.Context, id uint) error
	Withdraw(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateWithConsent(ctx context.Context, user *entity.User, consent *entity.TosConsent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		consent.UserID = user.ID
		return tx.Create(consent).Error
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND account_status = ?", email, entity.AccountStatusActive).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Where("nickname = ?", nickname).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).
		Update("last_login_at", time.Now()).Error
}

func (r *userRepository) Withdraw(ctx context.Context, id uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"account_status": entity.AccountStatusWithdrawn,
		"withdrawn_at":   now,
	}).Error
}
