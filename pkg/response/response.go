package response

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"cslab.kr/securityhub/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// Generic message shown when an unexpected failure reaches the client.
const msgInternal = "요청 처리 중 오류가 발생했습니다."

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uint, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return 0, apperror.ErrUnauthorized
	}

	userID, err := strconv.ParseUint(userIDStr.(string), 10, 64)
	if err != nil {
		return 0, apperror.ErrUnauthorized
	}

	return uint(userID), nil
}

// GetUserEmail retrieves the authenticated user's email from the context.
func GetUserEmail(c *gin.Context) (string, error) {
	email, exists := c.Get("user_email")
	if !exists {
		return "", apperror.ErrUnauthorized
	}
	return email.(string), nil
}

// Error renders a standardized error response. Localized messages from
// apperror.AppError pass through; anything else becomes a generic 500.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		// Log internal errors, never leak them
		log.Printf("[Internal Error] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}

	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error] %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Unwrap())
	}

	c.JSON(code, gin.H{"error": appErr.Message})
}
