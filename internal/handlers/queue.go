package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"funcapp/internal/services"
)

const missingNameMessage = "⚠️ Please pass a name in the query string or body."

// queueOutput 将 name 写入队列。name 优先取查询参数，其次取 JSON 请求体；
// 请求体读取或解析失败与未提供 name 同等处理。
// @Summary      写入队列
// @Description  从查询参数或 JSON 请求体读取 name，组装为 {"name": ...} 后写入队列
// @Tags         functions
// @Accept       json
// @Produce      plain
// @Param        name  query  string  false  "名称"
// @Success      200 {string} string "confirmation"
// @Failure      400 {string} string "warning"
// @Router       /queueoutput [post]
func (h *Handler) queueOutput(c *gin.Context) {
	query := c.Request.URL.Query()
	var body []byte
	if query.Get("name") == "" {
		body, _ = readBody(c, h.cfg.MaxBodyBytes)
	}
	name, ok := services.ResolveName(query, body)
	if !ok {
		c.String(http.StatusBadRequest, missingNameMessage)
		return
	}
	msg, err := h.queueSvc.Send(c.Request.Context(), name)
	if err != nil {
		respondError(c, "queueoutput", err)
		return
	}
	loggerFor(c, "queueoutput").WithField("queue", h.cfg.Queue.Name).Info("message queued")
	c.String(http.StatusOK, "✅ Message '%s' sent to the queue.", msg)
}
