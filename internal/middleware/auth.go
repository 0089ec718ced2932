package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the JWT payload issued at login.
type SessionClaims struct {
	Email    string `json:"email"`
	IsExpert bool   `json:"is_expert"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

// NewToken issues a signed session token for the given user.
func NewToken(secret string, userID uint, email string, isExpert bool, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := SessionClaims{
		Email:    email,
		IsExpert: isExpert,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Fallback to query parameter "token" (useful for WebSockets)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "인증되지 않은 사용자입니다."})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "인증되지 않은 사용자입니다."})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*SessionClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "인증되지 않은 사용자입니다."})
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_email", claims.Email)
		c.Set("is_expert", claims.IsExpert)
		c.Next()
	}
}

// RequireExpert gates expert-only route groups. Ownership checks still apply
// downstream; the expert role never bypasses them.
func (m *AuthMiddleware) RequireExpert() gin.HandlerFunc {
	return func(c *gin.Context) {
		isExpert, exists := c.Get("is_expert")
		if !exists || !isExpert.(bool) {
			c.JSON(http.StatusForbidden, gin.H{"error": "전문가만 이용할 수 있는 기능입니다."})
			c.Abort()
			return
		}
		c.Next()
	}
}
