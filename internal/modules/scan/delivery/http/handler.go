package http

import (
	"net/http"
	"strconv"

	"cslab.kr/securityhub/internal/modules/scan/service"
	"cslab.kr/securityhub/pkg/apperror"
	"cslab.kr/securityhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type ScanHandler struct {
	service service.ScanService
}

func NewScanHandler(svc service.ScanService) *ScanHandler {
	return &ScanHandler{service: svc}
}

func (h *ScanHandler) History(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	history, err := h.service.History(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

func (h *ScanHandler) HistoryDetail(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.BadRequest("기록 ID가 필요합니다."))
		return
	}

	record, err := h.service.HistoryDetail(c.Request.Context(), uint(id), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *ScanHandler) UserScans(c *gin.Context) {
	email := c.Query("email")

	scans, err := h.service.UserScans(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, scans)
}

func (h *ScanHandler) ExpertFeed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	scans, err := h.service.ExpertFeed(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, scans)
}

func (h *ScanHandler) DashboardStats(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := h.service.DashboardStats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
