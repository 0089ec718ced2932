package repository

import (
	"context"

	"cslab.kr/securityhub/internal/entity"
	"gorm.io/gorm"
)

type PostFilter struct {
	Category string
	Tab      string
	Limit    int
}

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uint) (*entity.Post, error)
	FindDetailByID(ctx context.Context, id uint) (*entity.Post, error)
	List(ctx context.Context, filter PostFilter) ([]entity.Post, error)
	Popular(ctx context.Context, limit int) ([]entity.Post, error)
	IncrementViews(ctx context.Context, id uint) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	DeleteWithComments(ctx context.Context, id uint) error
	CommentsByPostID(ctx context.Context, postID uint) ([]entity.PostComment, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var post entity.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindDetailByID(ctx context.Context, id uint) (*entity.Post, error) {
	var post entity.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("ScanResult").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]entity.Post, error) {
	query := r.db.WithContext(ctx).
		Preload("Author").
		Preload("ScanResult")

	if filter.Category != "" && filter.Category != "all" {
		query = query.Where("category = ?", filter.Category)
	}

	if filter.Tab == "popular" {
		query = query.Order("views DESC, created_at DESC")
	} else {
		query = query.Order("created_at DESC")
	}

	var posts []entity.Post
	err := query.Limit(filter.Limit).Find(&posts).Error
	return posts, err
}

func (r *postRepository) Popular(ctx context.Context, limit int) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("views DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *postRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&entity.Post{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteWithComments removes a post and its comments in one transaction.
func (r *postRepository) DeleteWithComments(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&entity.PostComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Post{}, id).Error
	})
}

// CommentsByPostID returns a post's comments with bot analysis pinned first.
func (r *postRepository) CommentsByPostID(ctx context.Context, postID uint) ([]entity.PostComment, error) {
	var comments []entity.PostComment
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = post_comments.author_id").
		Where("post_comments.post_id = ?", postID).
		Order("users.is_bot DESC, post_comments.created_at ASC").
		Preload("Author").
		Find(&comments).Error
	return comments, err
}
