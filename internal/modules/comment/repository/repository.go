package repository

import (
	"context"

	"cslab.kr/securityhub/internal/entity"
	"gorm.io/gorm"
)

type CommentRepository interface {
	// CreateWithCount inserts the comment and bumps the post's comment_count
	// in one transaction.
	CreateWithCount(ctx context.Context, comment *entity.PostComment) error
	FindByID(ctx context.Context, id uint) (*entity.PostComment, error)
	UpdateContent(ctx context.Context, id uint, content string) error
	// DeleteWithCount removes the comment and decrements the post's
	// comment_count, floored at zero, in one transaction.
	DeleteWithCount(ctx context.Context, comment *entity.PostComment) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateWithCount(ctx context.Context, comment *entity.PostComment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	})
}

func (r *commentRepository) FindByID(ctx context.Context, id uint) (*entity.PostComment, error) {
	var comment entity.PostComment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	return r.db.WithContext(ctx).Model(&entity.PostComment{}).
		Where("id = ?", id).
		Update("content", content).Error
}

func (r *commentRepository) DeleteWithCount(ctx context.Context, comment *entity.PostComment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.PostComment{}, comment.ID).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("GREATEST(comment_count - 1, 0)")).Error
	})
}
