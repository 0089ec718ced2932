package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/internal/modules/search/dto"
	"cslab.kr/securityhub/internal/modules/search/repository"
	"cslab.kr/securityhub/pkg/apperror"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const (
	postIndex      = "posts"
	searchLimit    = 50
	excerptRuneLen = 200
)

type SearchService interface {
	IndexPost(post *entity.Post) error
	DeletePost(id uint) error
	Search(ctx context.Context, keyword string) (*dto.SearchResponse, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	repo      repository.SearchRepository
	sanitizer *bluemonday.Policy
}

// NewSearchService builds the keyword-search service. client may be nil, in
// which case indexing becomes a no-op and queries fall back to SQL.
func NewSearchService(client meilisearch.ServiceManager, repo repository.SearchRepository) SearchService {
	s := &searchService{
		client:    client,
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
	if client != nil {
		s.initIndex()
	}
	return s
}

func (s *searchService) initIndex() {
	sortable := []string{"created_at", "views"}
	if _, err := s.client.Index(postIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("failed to update posts sortable attributes: %v", err)
	}
}

type meiliPostDoc struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	Author          string  `json:"author"`
	AuthorID        uint    `json:"author_id"`
	ProfileImageURL *string `json:"profile_image_url"`
	Views           int     `json:"views"`
	CommentCount    int     `json:"comment_count"`
	CreatedAt       int64   `json:"created_at"`
}

func (s *searchService) cleanContentForIndex(content string) string {
	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *searchService) IndexPost(post *entity.Post) error {
	if s.client == nil {
		return nil
	}

	doc := meiliPostDoc{
		ID:           post.ID,
		Title:        post.Title,
		Content:      s.cleanContentForIndex(post.Content),
		Views:        post.Views,
		CommentCount: post.CommentCount,
		CreatedAt:    post.CreatedAt.Unix(),
	}
	if post.Author != nil {
		doc.Author = post.Author.Nickname
		doc.AuthorID = post.Author.ID
		doc.ProfileImageURL = post.Author.ProfileImageURL
	}

	primaryKey := "id"
	_, err := s.client.Index(postIndex).AddDocuments([]meiliPostDoc{doc}, &primaryKey)
	return err
}

func (s *searchService) DeletePost(id uint) error {
	if s.client == nil {
		return nil
	}
	_, err := s.client.Index(postIndex).DeleteDocument(fmt.Sprintf("%d", id))
	return err
}

func (s *searchService) Search(ctx context.Context, keyword string) (*dto.SearchResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apperror.BadRequest("검색어를 입력해주세요.")
	}

	if s.client != nil {
		results, err := s.searchMeili(keyword)
		if err == nil {
			return &dto.SearchResponse{Results: results}, nil
		}
		log.Printf("meilisearch query failed, falling back to SQL: %v", err)
	}

	posts, err := s.repo.SearchPosts(ctx, keyword, searchLimit)
	if err != nil {
		return nil, apperror.Internal("검색을 수행할 수 없습니다.", err)
	}

	results := make([]dto.SearchResult, 0, len(posts))
	for _, post := range posts {
		item := dto.SearchResult{
			Type:         "post",
			ID:           post.ID,
			Title:        post.Title,
			Content:      excerpt(post.Content),
			Views:        post.Views,
			CommentCount: post.CommentCount,
			CreatedAt:    post.CreatedAt.Format(time.RFC3339),
		}
		if post.Author != nil {
			item.Author = post.Author.Nickname
			item.AuthorID = post.Author.ID
			item.ProfileImageURL = post.Author.ProfileImageURL
		}
		results = append(results, item)
	}

	return &dto.SearchResponse{Results: results}, nil
}

func (s *searchService) searchMeili(keyword string) ([]dto.SearchResult, error) {
	resp, err := s.client.Index(postIndex).Search(keyword, &meilisearch.SearchRequest{
		Limit: searchLimit,
	})
	if err != nil {
		return nil, err
	}

	results := make([]dto.SearchResult, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc meiliPostDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}

		results = append(results, dto.SearchResult{
			Type:            "post",
			ID:              doc.ID,
			Title:           doc.Title,
			Content:         excerpt(doc.Content),
			Author:          doc.Author,
			AuthorID:        doc.AuthorID,
			ProfileImageURL: doc.ProfileImageURL,
			Views:           doc.Views,
			CommentCount:    doc.CommentCount,
			CreatedAt:       time.Unix(doc.CreatedAt, 0).Format(time.RFC3339),
		})
	}
	return results, nil
}

// excerpt caps result bodies at 200 characters for the result list.
func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptRuneLen {
		return content
	}
	return string(runes[:excerptRuneLen])
}
