package metrics

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 指标定义：
// - http_requests_total：按路径与方法统计请求次数（附带状态码标签）
// - http_request_duration_seconds：按路径与方法统计请求耗时分布
// - queue_messages_published_total：成功写入队列的消息数
// - todo_rows_inserted_total：成功写入数据表的待办行数
// - sink_errors_total：按输出目标（queue/table）统计写入失败次数
var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP 请求计数（按路径/方法/状态）"},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP 请求耗时（秒）", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
	QueueMessagesPublished = prometheus.NewCounter(prometheus.CounterOpts{Name: "queue_messages_published_total", Help: "已写入队列的消息数"})
	ToDoRowsInserted       = prometheus.NewCounter(prometheus.CounterOpts{Name: "todo_rows_inserted_total", Help: "已写入数据表的待办行数"})
	SinkErrors             = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sink_errors_total", Help: "输出目标写入失败计数（按目标）"},
		[]string{"sink"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, QueueMessagesPublished, ToDoRowsInserted, SinkErrors)
}

// Handler 返回记录基础 HTTP 指标的中间件（QPS/耗时）。
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start).Seconds()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPLatency.WithLabelValues(path, c.Request.Method).Observe(dur)
		HTTPRequests.WithLabelValues(path, c.Request.Method, fmt.Sprintf("%d", c.Writer.Status())).Inc()
	}
}

// Exposer 返回标准 Prometheus 暴露处理器。
func Exposer() gin.HandlerFunc { return gin.WrapH(promhttp.Handler()) }
