package middleware

import (
	"strings"

	"github.com/dimitrije/pickup-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	UserIDKey   = "user_id"
	UserNameKey = "user_name"
)

type IdentityValidator interface {
	Validate(token string) (*services.IdentityClaims, error)
}

// Identity resolves the caller from an optional bearer token. Requests
// without an Authorization header pass through anonymously; a header that
// is present but unusable is rejected.
func Identity(validator IdentityValidator) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := validator.Validate(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserNameKey, claims.Name)

		c.Next()
	}
}

// GetUserID returns the token identity, or "" for anonymous callers.
func GetUserID(c *drift.Context) string {
	if id, ok := c.Get(UserIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

func GetUserName(c *drift.Context) string {
	if name, ok := c.Get(UserNameKey); ok {
		if s, ok := name.(string); ok {
			return s
		}
	}
	return ""
}
