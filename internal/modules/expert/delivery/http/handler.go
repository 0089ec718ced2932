package http

import (
	"net/http"

	"cslab.kr/securityhub/internal/modules/expert/service"
	"cslab.kr/securityhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type ExpertHandler struct {
	service service.ExpertService
}

func NewExpertHandler(svc service.ExpertService) *ExpertHandler {
	return &ExpertHandler{service: svc}
}

func (h *ExpertHandler) List(c *gin.Context) {
	featuredOnly := c.Query("featured") == "true"

	experts, err := h.service.List(c.Request.Context(), featuredOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, experts)
}
