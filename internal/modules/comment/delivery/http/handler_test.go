package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cslab.kr/securityhub/internal/modules/comment/dto"
	"github.com/gin-gonic/gin"
)

type fakeCommentService struct{}

func (s *fakeCommentService) Create(ctx context.Context, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	return &dto.CommentResponse{
		ID:      42,
		PostID:  req.PostID,
		Content: req.Content,
		Author:  "댓글러",
	}, nil
}
func (s *fakeCommentService) Update(ctx context.Context, id uint, req dto.UpdateCommentRequest) error {
	return nil
}
func (s *fakeCommentService) Delete(ctx context.Context, id uint, req dto.DeleteCommentRequest) error {
	return nil
}

func TestCreateCommentResponseCarriesCommentID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCommentHandler(&fakeCommentService{})

	router := gin.New()
	router.POST("/api/community/comments", handler.Create)

	body := `{"postId": 10, "content": "좋은 글이네요", "userEmail": "user@example.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/community/comments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success   bool                `json:"success"`
		CommentID uint                `json:"commentId"`
		Comment   dto.CommentResponse `json:"comment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success flag missing")
	}
	if resp.CommentID != 42 {
		t.Errorf("top-level commentId missing or wrong: %d", resp.CommentID)
	}
	if resp.Comment.ID != 42 {
		t.Errorf("comment payload missing: %+v", resp.Comment)
	}
}
