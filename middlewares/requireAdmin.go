package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/sareecustoms/storefront-api/repositories"
)

const claimsKey = "user"

// RequireAuth accepts an HS256 bearer token signed with secret and stores its
// claims in the context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		ctx.Set(claimsKey, claims)
		ctx.Next()
	}
}

// Subject returns the uid carried by the token, or "" when the request is
// not authenticated.
func Subject(ctx *gin.Context) string {
	value, exists := ctx.Get(claimsKey)
	if !exists {
		return ""
	}
	claims, ok := value.(jwt.MapClaims)
	if !ok {
		return ""
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub
	}
	uid, _ := claims["user_id"].(string)
	return uid
}

// RequireAdmin lets a request through when the token carries the admin role
// or its subject is listed in admins.
func RequireAdmin(admins repositories.AdminRepository, log *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(claimsKey)
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
			return
		}

		claims := value.(jwt.MapClaims)
		if role, _ := claims["role"].(string); role == "admin" {
			ctx.Next()
			return
		}

		uid := Subject(ctx)
		if uid == "" {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		isAdmin, err := admins.IsAdmin(ctx.Request.Context(), uid)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			log.Error("Admin lookup failed", zap.String("uid", uid), zap.Error(err))
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unable to verify admin"})
			return
		}
		if !isAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		ctx.Next()
	}
}
