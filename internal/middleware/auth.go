package middleware

import (
	"net/http"
	"strings"

	"taskboard/backend/internal/models"
	"taskboard/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const currentUserKey = "current_user"

// RequireAuth resolves the request's bearer token into an authenticated user
// before any handler runs. Every failure mode (missing header, malformed or
// expired token, token for a deleted user) surfaces as the same 401 so the
// response leaks nothing about which check failed.
func RequireAuth(db *gorm.DB, tokens *services.TokenService, users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		fields := strings.Fields(header)
		if len(fields) == 0 {
			unauthorized(c)
			return
		}

		// The token is the final segment, tolerating a scheme prefix such
		// as "Bearer".
		tokenString := fields[len(fields)-1]

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := users.FindByID(db, userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if user == nil {
			// Issued to a user that no longer exists.
			unauthorized(c)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}

// CurrentUser returns the identity resolved by RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
