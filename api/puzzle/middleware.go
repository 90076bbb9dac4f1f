package puzzleapi

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/sheefra/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextRevealToken is the key used to store the raw reveal token in the Gin context.
	// The solution handler checks it against the requested puzzle.
	ContextRevealToken = "revealToken"
)

func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the reveal token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Status(http.StatusUnauthorized) // No token found in the header.
			c.Abort()
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Status(http.StatusUnauthorized) // Malformed Authorization header.
			c.Abort()
			return
		}

		token := parts[1]
		if _, err := ts.Verify(token); err != nil {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextRevealToken, token)
		c.Next()
	}
}
