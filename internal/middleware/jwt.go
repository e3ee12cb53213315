package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kamp-aid/backend/internal/auth"
	"github.com/kamp-aid/backend/pkg/response"
)

const (
	// ContextUserID is the key for user ID in gin context.
	ContextUserID = "user_id"
	// ContextUserType is the key for the account type in gin context.
	ContextUserType = "user_type"
	// ContextUserEmail is the key for user email in gin context.
	ContextUserEmail = "user_email"
)

// JWT returns a middleware that validates JWT and sets user claims in context.
func JWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserType, claims.Type)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}

// OptionalJWT sets user claims in context when a valid token is present, but
// lets anonymous requests through. Public endpoints whose responses vary by
// account type use this instead of JWT.
func OptionalJWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := jwtService.Validate(parts[1]); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextUserType, claims.Type)
				c.Set(ContextUserEmail, claims.Email)
			}
		}
		c.Next()
	}
}
