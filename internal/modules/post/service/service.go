package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/internal/guard"
	"cslab.kr/securityhub/internal/modules/post/dto"
	"cslab.kr/securityhub/internal/modules/post/repository"
	searchService "cslab.kr/securityhub/internal/modules/search/service"
	userRepo "cslab.kr/securityhub/internal/modules/user/repository"
	"cslab.kr/securityhub/pkg/apperror"
	"cslab.kr/securityhub/pkg/ratelimiter"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	listLimit    = 50
	popularLimit = 10
)

type PostService interface {
	List(ctx context.Context, category, tab string) ([]dto.PostListItem, error)
	Create(ctx context.Context, req dto.CreatePostRequest) (uint, error)
	Detail(ctx context.Context, id uint) (*dto.PostDetailResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdatePostRequest) error
	Delete(ctx context.Context, id uint, req dto.DeletePostRequest) error
	Popular(ctx context.Context) ([]dto.PopularPostItem, error)
}

type postService struct {
	postRepo     repository.PostRepository
	userRepo     userRepo.UserRepository
	redisClient  *redis.Client
	rateLimit    time.Duration
	scheduler    *CommentScheduler
	search       searchService.SearchService
	demoAccounts *guard.DemoAccounts
}

func NewPostService(postRepo repository.PostRepository, userRepo userRepo.UserRepository, redisClient *redis.Client, rateLimit time.Duration, scheduler *CommentScheduler, search searchService.SearchService, demoAccounts *guard.DemoAccounts) PostService {
	return &postService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		redisClient:  redisClient,
		rateLimit:    rateLimit,
		scheduler:    scheduler,
		search:       search,
		demoAccounts: demoAccounts,
	}
}

func (s *postService) List(ctx context.Context, category, tab string) ([]dto.PostListItem, error) {
	posts, err := s.postRepo.List(ctx, repository.PostFilter{
		Category: category,
		Tab:      tab,
		Limit:    listLimit,
	})
	if err != nil {
		return nil, apperror.Internal("게시글을 불러오는데 실패했습니다.", err)
	}

	items := make([]dto.PostListItem, 0, len(posts))
	for i := range posts {
		items = append(items, toListItem(&posts[i]))
	}
	return items, nil
}

func (s *postService) Create(ctx context.Context, req dto.CreatePostRequest) (uint, error) {
	if req.Title == "" || req.Category == "" || req.Content == "" || req.UserEmail == "" {
		return 0, apperror.BadRequest("필수 정보가 누락되었습니다.")
	}

	author, err := guard.ResolveIdentity(ctx, s.userRepo, req.UserEmail)
	if err != nil {
		return 0, err
	}

	allowed, err := ratelimiter.CheckAndSetRateLimit(ctx, s.redisClient, author.ID, "post", s.rateLimit)
	if err != nil {
		return 0, apperror.Internal("게시글 작성에 실패했습니다.", err)
	}
	if !allowed {
		ttl, _ := ratelimiter.GetRateLimitTTL(ctx, s.redisClient, author.ID, "post")
		return 0, &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("게시글은 %.0f초에 한 번만 작성할 수 있습니다. %.0f초 후 다시 시도해주세요.", s.rateLimit.Seconds(), ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	post := &entity.Post{
		AuthorID:     author.ID,
		Title:        req.Title,
		Category:     req.Category,
		Content:      req.Content,
		ScanResultID: req.ScanResultID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, author.ID, "post")
		return 0, apperror.Internal("게시글 작성에 실패했습니다.", err)
	}

	post.Author = author
	if err := s.search.IndexPost(post); err != nil {
		log.Printf("failed to index post %d: %v", post.ID, err)
	}

	s.scheduler.Schedule(post.ID, post.Title, post.Content, post.ScanResultID)

	return post.ID, nil
}

func (s *postService) Detail(ctx context.Context, id uint) (*dto.PostDetailResponse, error) {
	if err := s.postRepo.IncrementViews(ctx, id); err != nil {
		log.Printf("failed to increment views for post %d: %v", id, err)
	}

	post, err := s.postRepo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("게시글을 찾을 수 없습니다.")
		}
		return nil, apperror.Internal("게시글을 불러오는데 실패했습니다.", err)
	}

	comments, err := s.postRepo.CommentsByPostID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("게시글을 불러오는데 실패했습니다.", err)
	}

	detail := &dto.PostDetailResponse{
		PostListItem: toListItem(post),
		UpdatedAt:    post.UpdatedAt.Format(time.RFC3339),
		Comments:     make([]dto.CommentItem, 0, len(comments)),
	}
	if post.ScanResult != nil && post.ScanResult.ScanTarget != "" {
		detail.ScanTarget = &post.ScanResult.ScanTarget
	}

	for i := range comments {
		c := &comments[i]
		item := dto.CommentItem{
			ID:        c.ID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		}
		if c.Author != nil {
			item.Author = c.Author.Nickname
			item.AuthorEmail = c.Author.Email
			item.IsExpert = c.Author.IsExpert
			item.IsBot = c.Author.IsBot
			item.ProfileImageURL = c.Author.ProfileImageURL
		}
		detail.Comments = append(detail.Comments, item)
	}

	return detail, nil
}

func (s *postService) Update(ctx context.Context, id uint, req dto.UpdatePostRequest) error {
	if req.Title == "" || req.Category == "" || req.Content == "" || req.UserEmail == "" {
		return apperror.BadRequest("필수 정보가 누락되었습니다.")
	}

	caller, err := guard.ResolveIdentity(ctx, s.userRepo, req.UserEmail)
	if err != nil {
		return err
	}

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("게시글을 찾을 수 없습니다.")
		}
		return apperror.Internal("게시글 수정에 실패했습니다.", err)
	}

	if err := guard.RequireOwner(post.AuthorID, caller.ID); err != nil {
		return apperror.Forbidden("수정 권한이 없습니다.")
	}

	fields := map[string]interface{}{
		"title":    req.Title,
		"category": req.Category,
		"content":  req.Content,
	}
	if req.ScanResultID != nil {
		fields["scan_result_id"] = *req.ScanResultID
	}
	if err := s.postRepo.UpdateFields(ctx, id, fields); err != nil {
		return apperror.Internal("게시글 수정에 실패했습니다.", err)
	}

	if updated, err := s.postRepo.FindDetailByID(ctx, id); err == nil {
		if err := s.search.IndexPost(updated); err != nil {
			log.Printf("failed to reindex post %d: %v", id, err)
		}
	}
	return nil
}

func (s *postService) Delete(ctx context.Context, id uint, req dto.DeletePostRequest) error {
	if req.UserEmail == "" {
		return apperror.BadRequest("필수 정보가 누락되었습니다.")
	}
	if s.demoAccounts.Contains(req.UserEmail) {
		return apperror.Forbidden("데모 계정의 게시글은 삭제할 수 없습니다.")
	}

	caller, err := guard.ResolveIdentity(ctx, s.userRepo, req.UserEmail)
	if err != nil {
		return err
	}

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("게시글을 찾을 수 없습니다.")
		}
		return apperror.Internal("게시글 삭제에 실패했습니다.", err)
	}

	if err := guard.RequireOwner(post.AuthorID, caller.ID); err != nil {
		return apperror.Forbidden("삭제 권한이 없습니다.")
	}

	if err := s.postRepo.DeleteWithComments(ctx, id); err != nil {
		return apperror.Internal("게시글 삭제에 실패했습니다.", err)
	}

	if err := s.search.DeletePost(id); err != nil {
		log.Printf("failed to remove post %d from index: %v", id, err)
	}
	return nil
}

func (s *postService) Popular(ctx context.Context) ([]dto.PopularPostItem, error) {
	posts, err := s.postRepo.Popular(ctx, popularLimit)
	if err != nil {
		return nil, apperror.Internal("게시글을 불러오는데 실패했습니다.", err)
	}

	items := make([]dto.PopularPostItem, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		item := dto.PopularPostItem{
			ID:       p.ID,
			Title:    p.Title,
			Views:    p.Views,
			Comments: p.CommentCount,
			Rank:     i + 1,
		}
		if p.Author != nil {
			item.Author = p.Author.Nickname
		}
		items = append(items, item)
	}
	return items, nil
}

func toListItem(post *entity.Post) dto.PostListItem {
	item := dto.PostListItem{
		ID:           post.ID,
		Title:        post.Title,
		Category:     post.Category,
		Content:      post.Content,
		Views:        post.Views,
		CommentCount: post.CommentCount,
		CreatedAt:    post.CreatedAt.Format(time.RFC3339),
	}
	if post.Author != nil {
		item.Author = post.Author.Nickname
		item.IsExpert = post.Author.IsExpert
	}
	if scan := post.ScanResult; scan != nil {
		item.ScanID = &scan.ID
		item.ScanType = &scan.ScanType
		item.ScanResult = &scan.Result
		item.ScanRisk = scan.RiskScore
		item.EasySummary = scan.EasySummary
		scanDate := scan.CreatedAt.Format(time.RFC3339)
		item.ScanDate = &scanDate
	}
	return item
}
