package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jkz07/transcare/config"
	"github.com/jkz07/transcare/internal/auth"
)

// Identity is the read-only authenticated principal for a request. It is the
// only thing downstream features may learn about the session: whether someone
// is logged in, and who. It is created here and passed by value, never held
// in a package global.
type Identity struct {
	UserID        uint
	Email         string
	Authenticated bool
}

// IsAuthenticated reports whether a principal is present.
func (id Identity) IsAuthenticated() bool { return id.Authenticated }

// CurrentUserID returns the principal id and whether one exists.
func (id Identity) CurrentUserID() (uint, bool) { return id.UserID, id.Authenticated }

const identityKey = "identity"

// AuthMiddleware validates the Bearer token and installs the Identity on the
// request context. Requests without a valid token are rejected.
func AuthMiddleware(cfg *config.Config, authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTAccessSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id missing in token"})
			return
		}

		user, err := authSvc.GetUserByID(uint(userIDFloat))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set(identityKey, Identity{
			UserID:        user.ID,
			Email:         user.Email,
			Authenticated: true,
		})

		c.Next()
	}
}

// IdentityFromContext retrieves the Identity set by AuthMiddleware. The second
// return is false when the request never went through the middleware.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	raw, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := raw.(Identity)
	return id, ok
}
