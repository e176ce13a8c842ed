package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-planner/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextClientClaims is the key used to store client claims in the Gin context.
	ContextClientClaims = "clientClaims"
)

// Authorize rejects requests without a valid bearer token issued by ts.
func Authorize(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized) // No token found in the header.
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized) // Malformed Authorization header.
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Attach client claims to the request context for further use.
		c.Set(ContextClientClaims, claims)
		c.Next()
	}
}

// Subject returns the subject of the authorized client, if any.
func Subject(c *gin.Context) (string, bool) {
	value, ok := c.Get(ContextClientClaims)
	if !ok {
		return "", false
	}
	claims, ok := value.(map[string]interface{})
	if !ok {
		return "", false
	}
	sub, ok := claims["sub"].(string)
	return sub, ok
}
