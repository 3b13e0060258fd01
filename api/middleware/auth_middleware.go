package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pinstash/pinstash/api/common"
	"github.com/pinstash/pinstash/internal/auth"
)

const (
	ContextUserIDKey = "user_id"
	ContextEmailKey  = "email"
)

// RequireAuth 校验 Bearer 访问令牌并将用户信息写入请求上下文
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.RespondErrorAbort(c, http.StatusUnauthorized, "No Authorization request header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.RespondErrorAbort(c, http.StatusUnauthorized, "Authorization field format error")
			return
		}

		claims, err := jwtService.ParseToken(parts[1])
		if err != nil {
			common.RespondErrorAbort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			common.RespondErrorAbort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}
