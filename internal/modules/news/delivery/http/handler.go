package http

import (
	"net/http"
	"strconv"

	"cslab.kr/securityhub/internal/modules/news/dto"
	"cslab.kr/securityhub/internal/modules/news/service"
	"cslab.kr/securityhub/pkg/apperror"
	"cslab.kr/securityhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	service service.NewsService
}

func NewNewsHandler(svc service.NewsService) *NewsHandler {
	return &NewsHandler{service: svc}
}

func (h *NewsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	news, err := h.service.List(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, news)
}

func (h *NewsHandler) Create(c *gin.Context) {
	var req dto.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest("제목, 요약, 내용은 필수 항목입니다."))
		return
	}

	// The session identity backs the request when the body omits an email.
	if req.UserEmail == "" {
		if email, err := response.GetUserEmail(c); err == nil {
			req.UserEmail = email
		}
	}

	newsID, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"newsId":  newsID,
	})
}

func (h *NewsHandler) Detail(c *gin.Context) {
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

func (h *NewsHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateNewsRequest
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

func (h *NewsHandler) CreateComment(c *gin.Context) {
	var req dto.CreateNewsCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest("필수 정보가 누락되었습니다."))
		return
	}

	commentID, err := h.service.CreateComment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"commentId": commentID,
	})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("뉴스 ID가 필요합니다.")
	}
	return uint(id), nil
}
