package repository

import (
	"context"
	"time"

	"cslab.kr/securityhub/internal/entity"
	"gorm.io/gorm"
)

// MonthlyCount is one month's consultation-thread count for an expert.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type ScanRepository interface {
	HistoryByUserID(ctx context.Context, userID uint, limit, offset int) ([]entity.ScanRecord, int64, error)
	FindByIDAndUserID(ctx context.Context, id, userID uint) (*entity.ScanRecord, error)
	LatestByUserID(ctx context.Context, userID uint, limit int) ([]entity.ScanRecord, error)
	// GlobalFeed returns records across all users, newest first.
	GlobalFeed(ctx context.Context, limit, offset int) ([]entity.ScanRecord, error)
	ExpertProfileByUserID(ctx context.Context, userID uint) (*entity.ExpertProfile, error)
	// ConsultationCountsSince groups an expert's threads by month ("2006-01").
	ConsultationCountsSince(ctx context.Context, expertID uint, since time.Time) ([]MonthlyCount, error)
}

type scanRepository struct {
	db *gorm.DB
}

func NewScanRepository(db *gorm.DB) ScanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) HistoryByUserID(ctx context.Context, userID uint, limit, offset int) ([]entity.ScanRecord, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.ScanRecord{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var records []entity.ScanRecord
	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, total, err
}

func (r *scanRepository) FindByIDAndUserID(ctx context.Context, id, userID uint) (*entity.ScanRecord, error) {
	var record entity.ScanRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *scanRepository) LatestByUserID(ctx context.Context, userID uint, limit int) ([]entity.ScanRecord, error) {
	var records []entity.ScanRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *scanRepository) GlobalFeed(ctx context.Context, limit, offset int) ([]entity.ScanRecord, error) {
	var records []entity.ScanRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, err
}

func (r *scanRepository) ExpertProfileByUserID(ctx context.Context, userID uint) (*entity.ExpertProfile, error) {
	var profile entity.ExpertProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *scanRepository) ConsultationCountsSince(ctx context.Context, expertID uint, since time.Time) ([]MonthlyCount, error) {
	var counts []MonthlyCount
	err := r.db.WithContext(ctx).Model(&entity.MessageThread{}).
		Select("to_char(created_at, 'YYYY-MM') as month, COUNT(*) as count").
		Where("expert_id = ? AND created_at >= ?", expertID, since).
		Group("month").
		Order("month ASC").
		Scan(&counts).Error
	return counts, err
}
