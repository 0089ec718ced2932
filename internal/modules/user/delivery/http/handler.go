package http

import (
	"net/http"

	"cslab.kr/securityhub/internal/modules/user/dto"
	"cslab.kr/securityhub/internal/modules/user/service"
	"cslab.kr/securityhub/pkg/apperror"
	"cslab.kr/securityhub/pkg/response"
	"cslab.kr/securityhub/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest("모든 필드를 입력해주세요."))
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest("이메일과 비밀번호를 입력해주세요."))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	email, _ := response.GetUserEmail(c)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	if err := h.service.UpdateProfile(c.Request.Context(), userID, email, req); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "프로필이 수정되었습니다."})
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	email, _ := response.GetUserEmail(c)

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest("현재 비밀번호와 새 비밀번호를 입력해주세요."))
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, email, req); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "비밀번호가 성공적으로 변경되었습니다."})
}

func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	email, _ := response.GetUserEmail(c)

	if err := h.service.DeleteAccount(c.Request.Context(), userID, email); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "회원 탈퇴가 완료되었습니다.",
		"redirectUrl": "/auth/signin",
	})
}

func (h *ProfileHandler) UploadProfileImage(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	email, _ := response.GetUserEmail(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, apperror.BadRequest("이미지 파일이 필요합니다."))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperror.Internal("프로필 이미지 업로드 중 오류가 발생했습니다.", err))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	imageURL, err := h.service.UploadProfileImage(c.Request.Context(), userID, email, file, fileHeader.Filename, contentType, fileHeader.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "프로필 이미지가 업로드되었습니다.",
		"imageUrl": imageURL,
	})
}

func (h *ProfileHandler) DeleteProfileImage(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	email, _ := response.GetUserEmail(c)

	if err := h.service.DeleteProfileImage(c.Request.Context(), userID, email); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "프로필 이미지가 삭제되었습니다."})
}
