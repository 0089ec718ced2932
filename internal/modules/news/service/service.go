package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/internal/guard"
	"cslab.kr/securityhub/internal/modules/news/dto"
	"cslab.kr/securityhub/internal/modules/news/repository"
	notifService "cslab.kr/securityhub/internal/modules/notification/service"
	userRepo "cslab.kr/securityhub/internal/modules/user/repository"
	"cslab.kr/securityhub/pkg/apperror"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

type NewsService interface {
	List(ctx context.Context, limit int) ([]dto.NewsListItem, error)
	Create(ctx context.Context, req dto.CreateNewsRequest) (uint, error)
	Detail(ctx context.Context, id uint) (*dto.NewsDetailResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateNewsRequest) error
	CreateComment(ctx context.Context, req dto.CreateNewsCommentRequest) (uint, error)
}

type newsService struct {
	newsRepo     repository.NewsRepository
	userRepo     userRepo.UserRepository
	notification notifService.NotificationService
}

func NewNewsService(newsRepo repository.NewsRepository, userRepo userRepo.UserRepository, notification notifService.NotificationService) NewsService {
	return &newsService{
		newsRepo:     newsRepo,
		userRepo:     userRepo,
		notification: notification,
	}
}

func (s *newsService) List(ctx context.Context, limit int) ([]dto.NewsListItem, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	news, err := s.newsRepo.List(ctx, limit)
	if err != nil {
		return nil, apperror.Internal("전문가 뉴스를 불러오는데 실패했습니다.", err)
	}

	items := make([]dto.NewsListItem, 0, len(news))
	for i := range news {
		n := &news[i]
		item := dto.NewsListItem{
			ID:          n.ID,
			Title:       n.Title,
			Summary:     n.Summary,
			Affiliation: n.Affiliation,
			Date:        n.CreatedAt.Format("2006.01.02"),
			Tag:         n.Tag,
			Image:       n.BgColor,
			Views:       n.Views,
		}
		if n.Author != nil {
			item.Author = n.Author.Nickname
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *newsService) Create(ctx context.Context, req dto.CreateNewsRequest) (uint, error) {
	if req.Title == "" || req.Summary == "" || req.Content == "" {
		return 0, apperror.BadRequest("제목, 요약, 내용은 필수 항목입니다.")
	}

	author, err := guard.ResolveIdentity(ctx, s.userRepo, req.UserEmail)
	if err != nil {
		return 0, err
	}
	if !author.IsExpert {
		return 0, apperror.Forbidden("전문가만 뉴스를 작성할 수 있습니다.")
	}

	news := &entity.News{
		AuthorID:    author.ID,
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		Tag:         req.Tag,
		BgColor:     req.BgColor,
		Affiliation: req.Affiliation,
	}
	if news.Tag == "" {
		news.Tag = entity.DefaultNewsTag
	}
	if news.BgColor == "" {
		news.BgColor = entity.DefaultNewsBgColor
	}

	if err := s.newsRepo.Create(ctx, news); err != nil {
		return 0, apperror.Internal("뉴스 작성에 실패했습니다.", err)
	}
	return news.ID, nil
}

func (s *newsService) Detail(ctx context.Context, id uint) (*dto.NewsDetailResponse, error) {
	if err := s.newsRepo.IncrementViews(ctx, id); err != nil {
		log.Printf("failed to increment views for news %d: %v", id, err)
	}

	news, err := s.newsRepo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("뉴스를 찾을 수 없습니다.")
		}
		return nil, apperror.Internal("뉴스를 불러오는데 실패했습니다.", err)
	}

	comments, err := s.newsRepo.CommentsByNewsID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("뉴스를 불러오는데 실패했습니다.", err)
	}

	detail := &dto.NewsDetailResponse{
		ID:          news.ID,
		Title:       news.Title,
		Summary:     news.Summary,
		Content:     news.Content,
		Views:       news.Views,
		CreatedAt:   news.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   news.UpdatedAt.Format(time.RFC3339),
		Tag:         news.Tag,
		BgColor:     news.BgColor,
		Affiliation: news.Affiliation,
		AuthorID:    news.AuthorID,
		Comments:    make([]dto.NewsCommentItem, 0, len(comments)),
	}
	if news.Author != nil {
		detail.Author = news.Author.Nickname
		detail.AuthorEmail = news.Author.Email
		detail.IsExpert = news.Author.IsExpert
		detail.ProfileImageURL = news.Author.ProfileImageURL
	}

	for i := range comments {
		c := &comments[i]
		item := dto.NewsCommentItem{
			ID:        c.ID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		}
		if c.Author != nil {
			item.Author = c.Author.Nickname
			item.AuthorEmail = c.Author.Email
			item.IsExpert = c.Author.IsExpert
			item.ProfileImageURL = c.Author.ProfileImageURL
		}
		detail.Comments = append(detail.Comments, item)
	}
	detail.CommentCount = len(detail.Comments)

	return detail, nil
}

func (s *newsService) Update(ctx context.Context, id uint, req dto.UpdateNewsRequest) error {
	if req.Title == "" || req.Summary == "" || req.Content == "" || req.UserEmail == "" {
		return apperror.BadRequest("필수 정보가 누락되었습니다.")
	}

	caller, err := guard.ResolveIdentity(ctx, s.userRepo, req.UserEmail)
	if err != nil {
		return err
	}

	// Expert gate first; the role never substitutes for ownership below.
	if !caller.IsExpert {
		return apperror.Forbidden("전문가만 뉴스를 수정할 수 있습니다.")
	}

	news, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("뉴스를 찾을 수 없습니다.")
		}
		return apperror.Internal("뉴스 수정에 실패했습니다.", err)
	}

	if err := guard.RequireOwner(news.AuthorID, caller.ID); err != nil {
		return apperror.Forbidden("수정 권한이 없습니다.")
	}

	tag := req.Tag
	if tag == "" {
		tag = entity.DefaultNewsTag
	}
	bgColor := req.BgColor
	if bgColor == "" {
		bgColor = entity.DefaultNewsBgColor
	}

	fields := map[string]interface{}{
		"title":       req.Title,
		"summary":     req.Summary,
		"content":     req.Content,
		"tag":         tag,
		"bg_color":    bgColor,
		"affiliation": req.Affiliation,
	}
	if err := s.newsRepo.UpdateFields(ctx, id, fields); err != nil {
		return apperror.Internal("뉴스 수정에 실패했습니다.", err)
	}
	return nil
}

func (s *newsService) CreateComment(ctx context.Context, req dto.CreateNewsCommentRequest) (uint, error) {
	if req.NewsID == 0 || req.Content == "" || req.UserEmail == "" {
		return 0, apperror.BadRequest("필수 정보가 누락되었습니다.")
	}

	author, err := guard.ResolveIdentity(ctx, s.userRepo, req.UserEmail)
	if err != nil {
		return 0, err
	}

	news, err := s.newsRepo.FindByID(ctx, req.NewsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperror.NotFound("뉴스를 찾을 수 없습니다.")
		}
		return 0, apperror.Internal("댓글 작성에 실패했습니다.", err)
	}

	comment := &entity.NewsComment{
		NewsID:   news.ID,
		AuthorID: author.ID,
		Content:  req.Content,
	}
	if err := s.newsRepo.CreateComment(ctx, comment); err != nil {
		return 0, apperror.Internal("댓글 작성에 실패했습니다.", err)
	}

	if news.AuthorID != author.ID {
		err := s.notification.CreateNotification(ctx, &entity.Notification{
			UserID:  news.AuthorID,
			Type:    entity.NotificationTypeNewsComment,
			Title:   "회원님의 뉴스에 새 댓글이 달렸습니다",
			Content: req.Content,
			Link:    fmt.Sprintf("/experts/%d", news.ID),
		})
		if err != nil {
			log.Printf("failed to create news comment notification for news %d: %v", news.ID, err)
		}
	}
	return comment.ID, nil
}
