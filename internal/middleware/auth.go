package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/nallenclassics/barber-booking/internal/config"
	"github.com/nallenclassics/barber-booking/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserType = "userType"
	ContextTokenID  = "tokenID"
)

// Identify resolves the Bearer token when one is sent. Requests without an
// Authorization header pass through anonymous; a token that is malformed,
// expired, or whose session row was revoked gets a 401.
func Identify(cfg *config.Config, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		userID, ok1 := claims["sub"].(float64)
		userType, ok2 := claims["type"].(string)
		tokenID, ok3 := claims["jti"].(string)
		if !ok1 || !ok2 || !ok3 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		// The jti must still be backed by a live session row; logout
		// deletes it, which revokes the token before its exp.
		var session models.Session
		err = db.Where("token_id = ?", tokenID).First(&session).Error
		if err != nil || session.ExpiresAt.Before(time.Now()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session_revoked"})
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserType, userType)
		c.Set(ContextTokenID, tokenID)

		c.Next()
	}
}

func requireType(userType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, ok := c.Get(ContextUserType)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication_required"})
			return
		}
		if got != userType {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func RequireBarber() gin.HandlerFunc   { return requireType(models.UserTypeBarber) }
func RequireCustomer() gin.HandlerFunc { return requireType(models.UserTypeCustomer) }

// IsBarber reports whether the request carries a staff session.
func IsBarber(c *gin.Context) bool {
	userType, ok := c.Get(ContextUserType)
	return ok && userType == models.UserTypeBarber
}
