package repository

import (
	"context"

	"cslab.kr/securityhub/internal/entity"
	"gorm.io/gorm"
)

type ExpertRepository interface {
	// List returns profiles of active experts, best-rated first. featuredOnly
	// additionally filters is_featured and caps the result.
	List(ctx context.Context, featuredOnly bool, featuredLimit int) ([]entity.ExpertProfile, error)
}

type expertRepository struct {
	db *gorm.DB
}

func NewExpertRepository(db *gorm.DB) ExpertRepository {
	return &expertRepository{db: db}
}

func (r *expertRepository) List(ctx context.Context, featuredOnly bool, featuredLimit int) ([]entity.ExpertProfile, error) {
	query := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = expert_profiles.user_id").
		Where("users.account_status = ?", entity.AccountStatusActive).
		Order("expert_profiles.rating DESC, expert_profiles.consultation_count DESC").
		Preload("User")

	if featuredOnly {
		query = query.Where("expert_profiles.is_featured = ?", true).Limit(featuredLimit)
	}

	var profiles []entity.ExpertProfile
	err := query.Find(&profiles).Error
	return profiles, err
}
