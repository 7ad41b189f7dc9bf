package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"funcapp/internal/services"
)

// @Summary      新增待办
// @Description  解析 JSON 请求体 {order,title,url,completed}，生成 Id 后写入待办表
// @Tags         functions
// @Accept       json
// @Produce      plain
// @Success      201 {string} string "confirmation"
// @Failure      400 {string} string "error detail"
// @Router       /addtodo [post]
func (h *Handler) addToDo(c *gin.Context) {
	body, err := readBody(c, h.cfg.MaxBodyBytes)
	if err != nil {
		respondError(c, "addtodo", services.NewError(services.BodyParseError, err))
		return
	}
	row, err := h.todoSvc.Add(c.Request.Context(), body)
	if err != nil {
		respondError(c, "addtodo", err)
		return
	}
	loggerFor(c, "addtodo").WithFields(log.Fields{"table": h.cfg.Table.Name, "id": row.ID}).Info("todo inserted")
	c.String(http.StatusCreated, "✅ ToDo item added to SQL database.")
}
