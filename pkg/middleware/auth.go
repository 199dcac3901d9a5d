package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farmnet/farmledger/internal/config"
	"github.com/farmnet/farmledger/internal/tokens"
)

// IdentityKey is the context key under which the caller's wallet
// identity is stored for downstream handlers.
const IdentityKey = "identity"

// AuthMiddleware verifies Bearer tokens and attaches the wallet
// identity from the token's claims. Mutating routes run ledger
// transactions as that identity.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		// Expect 'Bearer <token>'
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		claims, err := tokens.Parse(cfg, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		identity, _ := claims["identity"].(string)
		if identity == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token carries no identity"})
			return
		}

		c.Set(IdentityKey, identity)
		c.Set("claims", map[string]interface{}(claims))
		c.Next()
	}
}
