package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
)

// Middleware extracts the bearer token from the Authorization header,
// resolves the caller and attaches it to the request context. It never
// rejects a request: an unresolvable credential just leaves the
// request anonymous.
func Middleware(resolver *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		raw := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(strings.ToLower(h), "bearer ") {
			raw = h[len("bearer "):]
		}

		user, err := resolver.Resolve(ctx, raw)
		if err != nil {
			// Store failure during auth resolution: proceed
			// anonymously, permission checks will still apply.
			logr.FromContextOrDiscard(ctx).Error(err, "resolving auth context")
		}
		if user != nil {
			c.Request = c.Request.WithContext(WithUser(ctx, user))
		}

		c.Next()
	}
}
