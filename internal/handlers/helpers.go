package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"funcapp/internal/middlewares"
	"funcapp/internal/services"
)

// readBody 读取至多 max 字节的请求体。
func readBody(c *gin.Context, max int64) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	return io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, max))
}

// errorStatus 为错误类别到响应状态码的映射。写入失败同样按 400 返回，与既有客户端约定一致。
var errorStatus = map[services.ErrorKind]int{
	services.BodyParseError: http.StatusBadRequest,
	services.SinkWriteError: http.StatusBadRequest,
}

func statusFor(kind services.ErrorKind) int {
	if code, ok := errorStatus[kind]; ok {
		return code
	}
	return http.StatusBadRequest
}

// respondError 记录错误并以纯文本返回错误详情。
func respondError(c *gin.Context, fn string, err error) {
	kind := services.KindOf(err)
	entry := log.WithFields(log.Fields{
		"function":   fn,
		"kind":       string(kind),
		"request_id": c.GetString(middlewares.RequestIDKey),
	})
	if kind == services.SinkWriteError {
		entry.WithField("detail", services.SinkErrorDetail(err)).Error("sink write failed")
	} else {
		entry.WithError(err).Warn("request rejected")
	}
	c.String(statusFor(kind), "❌ Error: %s", err.Error())
}

func loggerFor(c *gin.Context, fn string) *log.Entry {
	return log.WithFields(log.Fields{
		"function":   fn,
		"request_id": c.GetString(middlewares.RequestIDKey),
	})
}
