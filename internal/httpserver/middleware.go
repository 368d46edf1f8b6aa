package httpserver

import (
	"net/http"
	"strings"

	"techshop/internal/domain"
	authsvc "techshop/internal/service/auth"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// authMiddleware verifies the bearer token and attaches the identity to
// the request. Missing/malformed header is 401; a present but invalid or
// expired token is 403, matching how clients distinguish "log in" from
// "log in again".
func authMiddleware(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication token not found"})
			return
		}
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization header"})
			return
		}
		identity, err := svc.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "invalid token"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// adminOnly requires the verified identity to carry the admin role.
func adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identityFrom(c)
		if !ok || id.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "access denied"})
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) (authsvc.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return authsvc.Identity{}, false
	}
	id, ok := v.(authsvc.Identity)
	return id, ok
}
