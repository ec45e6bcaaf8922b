package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionLookup 会话查询函数，由登录模块提供
type SessionLookup func(token string) (identity string, found bool)

// Auth 校验 Authorization 头里的会话令牌，
// 通过后把身份写入上下文供后续处理使用
func Auth(lookup SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": http.StatusUnauthorized,
				"msg":  "未登录",
			})
			return
		}
		identity, found := lookup(token)
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": http.StatusUnauthorized,
				"msg":  "会话已过期，请重新登录",
			})
			return
		}
		c.Set("identity", identity)
		c.Next()
	}
}
