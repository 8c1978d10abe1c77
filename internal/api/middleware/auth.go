package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/postboard/internal/access"
	"github.com/d60-Lab/postboard/pkg/auth"
	"github.com/d60-Lab/postboard/pkg/response"
)

const callerKey = "caller"

// OptionalAuth 解析 cookie 或 Bearer token；无效 token 按匿名处理
func OptionalAuth(tokens *auth.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(cookieName)
		}
		if token != "" {
			if claims, err := tokens.Parse(token); err == nil {
				SetCaller(c, access.Caller{UserID: claims.Subject, Username: claims.Username})
			}
		}
		c.Next()
	}
}

// LoginRequired 匿名请求 302 到登录页，带上原始 URI
func LoginRequired(loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := access.Create(Caller(c), c.Request.URL.RequestURI(), loginURL)
		if !d.Allowed() {
			response.Redirect(c, d.Target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetCaller 同时写入 gin 上下文和 request context
func SetCaller(c *gin.Context, caller access.Caller) {
	c.Set(callerKey, caller)
	c.Request = c.Request.WithContext(access.WithCaller(c.Request.Context(), caller))
}

// Caller 当前请求的调用者，未登录为零值
func Caller(c *gin.Context) access.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(access.Caller); ok {
			return caller
		}
	}
	return access.CallerFrom(c.Request.Context())
}

func bearer(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
