package middleware

import (
	"sauticare_web/internal/auth"
	"sauticare_web/internal/util"

	"github.com/gin-gonic/gin"
)

// RequireSession 会话门卫：本地会话必须处于 authenticated，
// 否则直接 401，不去打扰远程后端。
func RequireSession(store *auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !store.Authenticated() {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
