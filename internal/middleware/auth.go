package middleware

import (
	"context"
	"gradebook_backend/internal/config"
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenDenylist 已注销令牌的查询接口（AuthService 用 Redis 实现）
type TokenDenylist interface {
	IsTokenRevoked(ctx context.Context, token string) bool
}

func AuthMiddleware(store *config.Store, denylist TokenDenylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, store.Load().JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if denylist != nil && denylist.IsTokenRevoked(c.Request.Context(), tokenString) {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Set("token", tokenString)
		c.Next()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
