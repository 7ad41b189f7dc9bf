package main

// @title           funcapp
// @version         0.1.0
// @description     两个 HTTP 触发的函数端点：/queueoutput 将 name 写入 Redis 队列，/addtodo 将待办写入 MySQL 表。
// @schemes         http https
// @BasePath        /

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"funcapp/internal/config"
	"funcapp/internal/handlers"
	"funcapp/internal/metrics"
	"funcapp/internal/middlewares"
	"funcapp/internal/services"
	"funcapp/internal/storage"
)

// main 为服务入口：加载配置、初始化日志/存储、注册路由并启动 HTTP 服务。
func main() {
	cfg, err := config.Load()
	setupLogger(cfg.Log)
	if err != nil {
		log.WithError(err).Fatal("configuration error")
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("configuration error")
	}
	log.WithFields(log.Fields{
		"env":          cfg.Env,
		"http_addr":    cfg.HTTPAddr,
		"route_prefix": cfg.RoutePrefix,
		"mysql_dsn":    cfg.MySQL.DSNMasked(),
		"redis_addr":   cfg.Redis.Addr,
		"queue":        cfg.Queue.Name,
		"table":        cfg.Table.Name,
	}).Info("configuration loaded")

	// 初始化输出目标（MySQL + Redis）
	db, err := storage.InitMySQL(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect mysql")
	}
	defer storage.CloseMySQL(db)

	rdb, err := storage.InitRedis(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect redis")
	}
	defer func() { _ = rdb.Close() }()

	queue := services.NewRedisQueue(rdb, cfg.Queue.Name)
	table := services.NewGormTable(db, cfg.Table.Name)

	// HTTP 路由与中间件
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestID())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.SecurityHeaders(cfg))
	router.Use(metrics.Handler())

	handlers.New(cfg, queue, table, rdb).RegisterRoutes(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("starting http server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen")
		}
	}()

	// 优雅退出
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	} else {
		log.Info("server stopped")
	}
}

// setupLogger 按配置设置 logrus 的格式与级别；未知级别回退到 info。
func setupLogger(lc config.LogConfig) {
	if lc.Format == "text" {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	}
	log.SetOutput(os.Stdout)
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
