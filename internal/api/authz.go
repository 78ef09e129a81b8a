package api

import (
	"strings"

	"github.com/blog-platform-api/internal/apperr"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// identityKey is the gin context key holding the resolved caller identity
const identityKey = "identity"

// Authorize decides whether an identity may access a route restricted
// to the given roles. An empty role list means the route is public. It
// is a pure function so the authorization rules are testable without
// any HTTP machinery.
func Authorize(ident *service.Identity, allowed []models.Role) error {
	if len(allowed) == 0 {
		return nil
	}
	if ident == nil {
		return apperr.Unauthorized("authentication required")
	}
	for _, role := range allowed {
		if ident.Role == role {
			return nil
		}
	}
	return apperr.Unauthorized("you do not have permission to access this resource")
}

// identityMiddleware resolves the Authorization header into an Identity
// stored in the request context. Requests without a header stay
// anonymous; a present but invalid token is rejected outright.
func identityMiddleware(auth service.AuthService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		ident, err := auth.ParseToken(token)
		if err != nil {
			log.Debug().Err(err).Msg("Rejected request with invalid token")
			respondError(c, "Authentication failed", err)
			c.Abort()
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// requireRoles runs the authorization predicate before the handler
func requireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := Authorize(identityFrom(c), roles); err != nil {
			respondError(c, "Authorization failed", err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// identityFrom returns the caller identity, or nil for anonymous requests
func identityFrom(c *gin.Context) *service.Identity {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, ok := value.(*service.Identity)
	if !ok {
		return nil
	}
	return ident
}
