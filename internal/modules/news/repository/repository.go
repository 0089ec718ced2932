package repository

import (
	"context"

	"cslab.kr/securityhub/internal/entity"
	"gorm.io/gorm"
)

type NewsRepository interface {
	Create(ctx context.Context, news *entity.News) error
	FindByID(ctx context.Context, id uint) (*entity.News, error)
	FindDetailByID(ctx context.Context, id uint) (*entity.News, error)
	// List returns expert-authored news, newest first.
	List(ctx context.Context, limit int) ([]entity.News, error)
	IncrementViews(ctx context.Context, id uint) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	CreateComment(ctx context.Context, comment *entity.NewsComment) error
	CommentsByNewsID(ctx context.Context, newsID uint) ([]entity.NewsComment, error)
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, news *entity.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

func (r *newsRepository) FindByID(ctx context.Context, id uint) (*entity.News, error) {
	var news entity.News
	if err := r.db.WithContext(ctx).First(&news, id).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

func (r *newsRepository) FindDetailByID(ctx context.Context, id uint) (*entity.News, error) {
	var news entity.News
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&news, id).Error
	if err != nil {
		return nil, err
	}
	return &news, nil
}

func (r *newsRepository) List(ctx context.Context, limit int) ([]entity.News, error) {
	var news []entity.News
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = expert_news.author_id").
		Where("users.is_expert = ?", true).
		Order("expert_news.created_at DESC").
		Limit(limit).
		Preload("Author").
		Find(&news).Error
	return news, err
}

func (r *newsRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.News{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *newsRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&entity.News{}).Where("id = ?", id).Updates(fields).Error
}

func (r *newsRepository) CreateComment(ctx context.Context, comment *entity.NewsComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *newsRepository) CommentsByNewsID(ctx context.Context, newsID uint) ([]entity.NewsComment, error) {
	var comments []entity.NewsComment
	err := r.db.WithContext(ctx).
		Where("news_id = ?", newsID).
		Order("created_at ASC").
		Preload("Author").
		Find(&comments).Error
	return comments, err
}
