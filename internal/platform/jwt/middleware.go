package jwtmw

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"rental_backend/internal/shared/authz"
)

const (
	// ContextUserID is the gin context key holding the principal's user id.
	ContextUserID = "userID"
	// ContextIsAdmin is the gin context key holding the principal's admin flag.
	ContextIsAdmin = "isAdmin"
)

// AuthRequired returns a Gin middleware that validates the bearer token and
// rejects unauthenticated requests.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Load secret key from environment variable
		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			// Server misconfiguration (JWT_SECRET not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 3. Parse and verify JWT signature
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			// Validation error or invalid token
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 4. Extract claims (payload)
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ContextUserID, sub)
		if isAdmin, ok := claims["is_admin"].(bool); ok {
			c.Set(ContextIsAdmin, isAdmin)
		}

		// 5. Pass control to the next handler
		c.Next()
	}
}

// PrincipalFrom extracts the authenticated principal set by AuthRequired.
// It returns nil for anonymous requests, which the authorization policy
// treats as an unauthenticated caller.
func PrincipalFrom(c *gin.Context) *authz.Principal {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return nil
	}
	userID, ok := id.(string)
	if !ok || userID == "" {
		return nil
	}
	return &authz.Principal{
		ID:      userID,
		IsAdmin: c.GetBool(ContextIsAdmin),
	}
}
