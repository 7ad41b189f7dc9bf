package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"funcapp/internal/config"
	"funcapp/internal/metrics"
	"funcapp/internal/middlewares"
	"funcapp/internal/services"
)

// Handler 聚合配置与两个函数的服务依赖，并注册所有 HTTP 路由。
type Handler struct {
	cfg      config.Config
	queueSvc *services.QueueService
	todoSvc  *services.ToDoService
	limiter  middlewares.Counter
}

// New 构造 Handler。rdb 仅用于限流，可为 nil（此时不限流）。
func New(cfg config.Config, queue services.QueueSink, table services.TableSink, rdb *redis.Client) *Handler {
	h := &Handler{
		cfg:      cfg,
		queueSvc: services.NewQueueService(queue),
		todoSvc:  services.NewToDoService(table),
	}
	if rdb != nil {
		h.limiter = rdb
	}
	return h
}

// RegisterRoutes 在 Gin 路由上挂载两个函数端点（任意方法）与运维端点。
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	fn := r.Group(h.cfg.RoutePrefix)
	fn.Use(middlewares.RateLimit(h.limiter, "fn", h.cfg.Limits.PerMinute, h.cfg.Limits.Window, func(c *gin.Context) string { return c.ClientIP() }))
	fn.Any("/queueoutput", h.queueOutput)
	fn.Any("/addtodo", h.addToDo)

	// 运维端点
	if h.cfg.Metrics.Enable {
		r.GET("/metrics", h.metrics)
	}
	r.GET("/healthz", h.healthz)
}

// @Summary      Prometheus 指标
// @Tags         ops
// @Produce      plain
// @Success      200 {string} string "metrics"
// @Router       /metrics [get]
func (h *Handler) metrics(c *gin.Context) { metrics.Exposer()(c) }

// @Summary      健康检查
// @Tags         ops
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /healthz [get]
func (h *Handler) healthz(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) }
