package http

import (
	"errors"
	"net/http"
	"strconv"

	"cslab.kr/securityhub/internal/modules/post/dto"
	"cslab.kr/securityhub/internal/modules/post/service"
	"cslab.kr/securityhub/pkg/apperror"
	"cslab.kr/securityhub/pkg/ratelimiter"
	"cslab.kr/securityhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	service service.PostService
}

func NewPostHandler(svc service.PostService) *PostHandler {
	return &PostHandler{service: svc}
}

func (h *PostHandler) List(c *gin.Context) {
	category := c.DefaultQuery("category", "all")
	tab := c.DefaultQuery("tab", "latest")

	posts, err := h.service.List(c.Request.Context(), category, tab)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest("필수 정보가 누락되었습니다."))
		return
	}

	postID, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var rateLimitErr *ratelimiter.RateLimitError
		if errors.As(err, &rateLimitErr) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": rateLimitErr.Message})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"postId":  postID,
	})
}

func (h *PostHandler) Detail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *PostHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest("필수 정보가 누락되었습니다."))
		return
	}

	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.DeletePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest("필수 정보가 누락되었습니다."))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *PostHandler) Popular(c *gin.Context) {
	posts, err := h.service.Popular(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("게시글 ID가 필요합니다.")
	}
	return uint(id), nil
}
