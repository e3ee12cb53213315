package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kamp-aid/backend/pkg/response"
)

// RequireType returns a middleware that allows only the given account types.
func RequireType(types ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{})
	for _, t := range types {
		allowed[t] = struct{}{}
	}
	return func(c *gin.Context) {
		typeVal, ok := c.Get(ContextUserType)
		if !ok {
			response.Unauthorized(c, "missing user context")
			c.Abort()
			return
		}
		userType, _ := typeVal.(string)
		if _, ok := allowed[userType]; !ok {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
