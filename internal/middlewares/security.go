package middlewares

import (
	"fmt"

	"funcapp/internal/config"
	"github.com/gin-gonic/gin"
)

// SecurityHeaders 为函数端点的纯文本响应设置安全相关响应头：
// 禁止 MIME 嗅探与缓存（响应回显了写入队列的消息，不应被中间代理缓存），
// 经 HTTPS 访问时按配置附加 HSTS。
func SecurityHeaders(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Cache-Control", "no-store")
		// 若请求经由 HTTPS（直连或反代）并且配置开启 HSTS，则设置 Strict-Transport-Security。
		if (c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https") && cfg.Security.HSTS.Enabled {
			v := fmt.Sprintf("max-age=%d", cfg.Security.HSTS.MaxAgeSeconds)
			if cfg.Security.HSTS.IncludeSubdomains {
				v += "; includeSubDomains"
			}
			c.Header("Strict-Transport-Security", v)
		}
		c.Next()
	}
}
