package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cslab.kr/securityhub/internal/modules/post/dto"
	"github.com/gin-gonic/gin"
)

type fakePostService struct {
	list    []dto.PostListItem
	popular []dto.PopularPostItem
}

func (s *fakePostService) List(ctx context.Context, category, tab string) ([]dto.PostListItem, error) {
	return s.list, nil
}
func (s *fakePostService) Create(ctx context.Context, req dto.CreatePostRequest) (uint, error) {
	return 1, nil
}
func (s *fakePostService) Detail(ctx context.Context, id uint) (*dto.PostDetailResponse, error) {
	return &dto.PostDetailResponse{}, nil
}
func (s *fakePostService) Update(ctx context.Context, id uint, req dto.UpdatePostRequest) error {
	return nil
}
func (s *fakePostService) Delete(ctx context.Context, id uint, req dto.DeletePostRequest) error {
	return nil
}
func (s *fakePostService) Popular(ctx context.Context) ([]dto.PopularPostItem, error) {
	return s.popular, nil
}

func newPostRouter(svc *fakePostService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewPostHandler(svc)

	router := gin.New()
	router.GET("/api/community/posts", handler.List)
	router.GET("/api/posts/popular", handler.Popular)
	return router
}

func TestListRespondsWithBareArray(t *testing.T) {
	svc := &fakePostService{list: []dto.PostListItem{
		{ID: 1, Title: "의심 문자 공유", Category: "sms"},
		{ID: 2, Title: "피싱 사이트 제보", Category: "url"},
	}}
	router := newPostRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/community/posts", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("body must be a JSON array, got %s", w.Body.String())
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items))
	}
}

func TestPopularRespondsWithBareArray(t *testing.T) {
	svc := &fakePostService{popular: []dto.PopularPostItem{
		{ID: 1, Title: "a", Rank: 1},
	}}
	router := newPostRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/popular", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("body must be a JSON array, got %s", w.Body.String())
	}
	if len(items) != 1 {
		t.Errorf("expected 1 item, got %d", len(items))
	}
}
