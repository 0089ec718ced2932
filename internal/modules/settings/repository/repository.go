package repository

import (
	"context"
	"errors"

	"cslab.kr/securityhub/internal/entity"
	"gorm.io/gorm"
)

// SettingsRepository backs the per-user singleton rows (settings, statistics,
// credits). Each GetOrCreate inserts the default row on first access.
type SettingsRepository interface {
	GetOrCreateSettings(ctx context.Context, userID uint) (*entity.UserSettings, error)
	UpdateSettings(ctx context.Context, userID uint, fields map[string]interface{}) (*entity.UserSettings, error)
	GetOrCreateStatistics(ctx context.Context, userID uint) (*entity.UserStatistics, error)
	GetOrCreateCredits(ctx context.Context, userID uint) (*entity.UserCredits, error)
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetOrCreateSettings(ctx context.Context, userID uint) (*entity.UserSettings, error) {
	var settings entity.UserSettings
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = entity.UserSettings{
			UserID:       userID,
			Theme:        "dark",
			SoundEffects: true,
			AutoScan:     false,
		}
		err = r.db.WithContext(ctx).Create(&settings).Error
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) UpdateSettings(ctx context.Context, userID uint, fields map[string]interface{}) (*entity.UserSettings, error) {
	err := r.db.WithContext(ctx).Model(&entity.UserSettings{}).
		Where("user_id = ?", userID).
		Updates(fields).Error
	if err != nil {
		return nil, err
	}

	var settings entity.UserSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) GetOrCreateStatistics(ctx context.Context, userID uint) (*entity.UserStatistics, error) {
	var stats entity.UserStatistics
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = entity.UserStatistics{UserID: userID}
		err = r.db.WithContext(ctx).Create(&stats).Error
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *settingsRepository) GetOrCreateCredits(ctx context.Context, userID uint) (*entity.UserCredits, error) {
	var credits entity.UserCredits
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&credits).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		credits = entity.UserCredits{UserID: userID, FreeScans: 5}
		err = r.db.WithContext(ctx).Create(&credits).Error
	}
	if err != nil {
		return nil, err
	}
	return &credits, nil
}
