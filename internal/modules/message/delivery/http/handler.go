package http

import (
	"net/http"
	"strconv"

	"cslab.kr/securityhub/internal/modules/message/dto"
	"cslab.kr/securityhub/internal/modules/message/service"
	"cslab.kr/securityhub/pkg/apperror"
	"cslab.kr/securityhub/pkg/response"
	"cslab.kr/securityhub/pkg/storage"
	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20 // 10 MB

type MessageHandler struct {
	service     service.MessageService
	fileStorage storage.ImageStorage
}

func NewMessageHandler(svc service.MessageService, fileStorage storage.ImageStorage) *MessageHandler {
	return &MessageHandler{
		service:     svc,
		fileStorage: fileStorage,
	}
}

func (h *MessageHandler) ListThreads(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	threads, err := h.service.ListThreads(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, threads)
}

func (h *MessageHandler) CreateThread(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest("필수 정보가 누락되었습니다."))
		return
	}

	threadID, err := h.service.GetOrCreateThread(c.Request.Context(), userID, req.ExpertID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"threadId": threadID})
}

func (h *MessageHandler) Messages(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	threadID, err := parseThreadID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	messages, err := h.service.Messages(c.Request.Context(), threadID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) Send(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	threadID, err := parseThreadID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest("메시지 또는 파일을 입력해주세요."))
		return
	}

	message, err := h.service.Send(c.Request.Context(), threadID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// Upload stores a consultation attachment and hands back its URL for a
// follow-up Send call.
func (h *MessageHandler) Upload(c *gin.Context) {
	if _, err := response.GetUserID(c); err != nil {
		response.Error(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperror.BadRequest("파일이 없습니다."))
		return
	}
	if fileHeader.Size > maxUploadSize {
		response.Error(c, apperror.BadRequest("파일 크기는 10MB를 초과할 수 없습니다."))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperror.Internal("파일 업로드에 실패했습니다.", err))
		return
	}
	defer file.Close()

	fileURL, err := h.fileStorage.UploadImage(c.Request.Context(), file, "uploads", fileHeader.Filename)
	if err != nil {
		response.Error(c, apperror.Internal("파일 업로드에 실패했습니다.", err))
		return
	}

	c.JSON(http.StatusOK, dto.UploadFileResponse{
		Success:  true,
		FileURL:  fileURL,
		FileName: fileHeader.Filename,
		FileSize: fileHeader.Size,
		FileType: fileHeader.Header.Get("Content-Type"),
	})
}

func parseThreadID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("threadId"), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("스레드 ID가 필요합니다.")
	}
	return uint(id), nil
}
