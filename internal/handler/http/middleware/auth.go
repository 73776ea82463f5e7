package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bizsuite/crm-api/internal/domain/entity"
	"github.com/bizsuite/crm-api/internal/handler/http/dto"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

// ContextUserKey is the gin context key the authenticated user is stored under.
const ContextUserKey = "user"

// AuthMiddleWare decodes the bearer token, loads the user and attaches it to
// the request context. Requests without a valid token are rejected with 401
// before any handler runs.
func AuthMiddleWare(userUseCase usecasecontract.IUserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authorization header is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authorization header must be of the form 'Bearer <token>'"})
			return
		}

		user, err := userUseCase.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid or expired token"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("userRole", string(user.Role))
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// AdminOnly rejects requests from non-Admin users with 403. It must run after
// AuthMiddleWare.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by AuthMiddleWare, or
// nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*entity.User)
	if !ok {
		return nil
	}
	return user
}
