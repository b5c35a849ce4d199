package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agrilink/internal/domain/models"
	"github.com/mamadbah2/agrilink/internal/identity"
)

const callerKey = "agrilink.caller"

// Authenticate extracts the bearer token, resolves it to a user and stores
// the caller on the request context. Requests without a resolvable caller
// are rejected.
func Authenticate(resolver identity.Resolver, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "error": "missing bearer token",
			})
			return
		}

		user, err := resolver.ResolveCaller(c.Request.Context(), token)
		if err != nil {
			var depErr *models.DependencyError
			switch {
			case errors.Is(err, identity.ErrUnknownAccount):
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"success": false, "error": "no account for this identity",
				})
			case errors.As(err, &depErr):
				logger.Warn("identity verification failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false, "error": "token verification failed",
				})
			default:
				logger.Error("caller resolution failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false, "error": "could not resolve caller",
				})
			}
			return
		}

		c.Set(callerKey, user)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not in the allowed set. Must
// run after Authenticate.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "error": "caller not resolved",
			})
			return
		}
		if _, ok := allowed[caller.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false, "error": "insufficient role",
			})
			return
		}
		c.Next()
	}
}

// CallerFrom returns the resolved caller stored by Authenticate.
func CallerFrom(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(callerKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
