package http

import (
	"github.com/gin-gonic/gin"

	"github.com/finbuddy/finance-advisor/internal/domain/auth"
)

// authClaimsKey is the gin context key under which authMiddleware stores
// the validated session claims.
const authClaimsKey = "auth_claims"

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(authClaimsKey, claims)
}

// getClaims returns the session claims of an authenticated request.
// Handlers use it to pin per-user state, such as chat history, to the
// token's subject rather than a caller-supplied id.
func getClaims(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(authClaimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}
