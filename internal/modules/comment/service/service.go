package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/internal/guard"
	"cslab.kr/securityhub/internal/modules/comment/dto"
	"cslab.kr/securityhub/internal/modules/comment/repository"
	notifService "cslab.kr/securityhub/internal/modules/notification/service"
	postRepo "cslab.kr/securityhub/internal/modules/post/repository"
	userRepo "cslab.kr/securityhub/internal/modules/user/repository"
	"cslab.kr/securityhub/pkg/apperror"
	"gorm.io/gorm"
)

type CommentService interface {
	Create(ctx context.Context, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateCommentRequest) error
	Delete(ctx context.Context, id uint, req dto.DeleteCommentRequest) error
}

type commentService struct {
	commentRepo  repository.CommentRepository
	postRepo     postRepo.PostRepository
	userRepo     userRepo.UserRepository
	notification notifService.NotificationService
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo postRepo.PostRepository, userRepo userRepo.UserRepository, notification notifService.NotificationService) CommentService {
	return &commentService{
		commentRepo:  commentRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
		notification: notification,
	}
}

func (s *commentService) Create(ctx context.Context, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if req.PostID == 0 || req.Content == "" || req.UserEmail == "" {
		return nil, apperror.BadRequest("필수 정보가 누락되었습니다.")
	}

	author, err := guard.ResolveIdentity(ctx, s.userRepo, req.UserEmail)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.FindByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("게시글을 찾을 수 없습니다.")
		}
		return nil, apperror.Internal("댓글 작성에 실패했습니다.", err)
	}

	comment := &entity.PostComment{
		PostID:   post.ID,
		AuthorID: author.ID,
		Content:  req.Content,
	}
	if err := s.commentRepo.CreateWithCount(ctx, comment); err != nil {
		return nil, apperror.Internal("댓글 작성에 실패했습니다.", err)
	}

	s.notifyPostAuthor(ctx, post, author, comment.Content)

	return &dto.CommentResponse{
		ID:              comment.ID,
		PostID:          comment.PostID,
		Content:         comment.Content,
		CreatedAt:       comment.CreatedAt.Format(time.RFC3339),
		Author:          author.Nickname,
		IsExpert:        author.IsExpert,
		IsBot:           author.IsBot,
		ProfileImageURL: author.ProfileImageURL,
	}, nil
}

// notifyPostAuthor fans out the new-comment notification after the comment is
// committed. Failures are logged, never surfaced to the commenter.
func (s *commentService) notifyPostAuthor(ctx context.Context, post *entity.Post, actor *entity.User, content string) {
	if post.AuthorID == actor.ID {
		return
	}

	notifType := entity.NotificationTypeComment
	title := "회원님의 글에 새 댓글이 달렸습니다"
	if actor.IsBot {
		notifType = entity.NotificationTypeAIComment
		title = "AI가 회원님의 글에 분석 댓글을 달았습니다"
	}

	err := s.notification.CreateNotification(ctx, &entity.Notification{
		UserID:  post.AuthorID,
		Type:    notifType,
		Title:   title,
		Content: content,
		Link:    fmt.Sprintf("/community/%d", post.ID),
	})
	if err != nil {
		log.Printf("failed to create comment notification for post %d: %v", post.ID, err)
	}
}

func (s *commentService) Update(ctx context.Context, id uint, req dto.UpdateCommentRequest) error {
	if req.Content == "" || req.UserEmail == "" {
		return apperror.BadRequest("필수 정보가 누락되었습니다.")
	}

	caller, err := guard.ResolveIdentity(ctx, s.userRepo, req.UserEmail)
	if err != nil {
		return err
	}

	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("댓글을 찾을 수 없습니다.")
		}
		return apperror.Internal("댓글 수정에 실패했습니다.", err)
	}

	if err := guard.RequireOwner(comment.AuthorID, caller.ID); err != nil {
		return apperror.Forbidden("수정 권한이 없습니다.")
	}

	if err := s.commentRepo.UpdateContent(ctx, id, req.Content); err != nil {
		return apperror.Internal("댓글 수정에 실패했습니다.", err)
	}
	return nil
}

func (s *commentService) Delete(ctx context.Context, id uint, req dto.DeleteCommentRequest) error {
	if req.UserEmail == "" {
		return apperror.BadRequest("필수 정보가 누락되었습니다.")
	}

	caller, err := guard.ResolveIdentity(ctx, s.userRepo, req.UserEmail)
	if err != nil {
		return err
	}

	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("댓글을 찾을 수 없습니다.")
		}
		return apperror.Internal("댓글 삭제에 실패했습니다.", err)
	}

	if err := guard.RequireOwner(comment.AuthorID, caller.ID); err != nil {
		return apperror.Forbidden("삭제 권한이 없습니다.")
	}

	if err := s.commentRepo.DeleteWithCount(ctx, comment); err != nil {
		return apperror.Internal("댓글 삭제에 실패했습니다.", err)
	}
	return nil
}
