package repository

import (
	"context"

	"cslab.kr/securityhub/internal/entity"
	"gorm.io/gorm"
)

// SearchRepository is the SQL fallback used when meilisearch is not
// configured: a LIKE scan over title, content and author nickname.
type SearchRepository interface {
	SearchPosts(ctx context.Context, keyword string, limit int) ([]entity.Post, error)
}

type searchRepository struct {
	db *gorm.DB
}

func NewSearchRepository(db *gorm.DB) SearchRepository {
	return &searchRepository{db: db}
}

func (r *searchRepository) SearchPosts(ctx context.Context, keyword string, limit int) ([]entity.Post, error) {
	pattern := "%" + keyword + "%"

	var posts []entity.Post
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = community_posts.author_id").
		Where("community_posts.title LIKE ? OR community_posts.content LIKE ? OR users.nickname LIKE ?",
			pattern, pattern, pattern).
		Order("community_posts.created_at DESC").
		Limit(limit).
		Preload("Author").
		Find(&posts).Error
	return posts, err
}
