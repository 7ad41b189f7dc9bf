package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config 保存进程级配置（仅使用配置文件或内置默认值）。
// 字段提供开发友好的默认值；生产环境请在 config.yaml 中覆盖。
type Config struct {
	Env          string
	HTTPAddr     string
	RoutePrefix  string
	MaxBodyBytes int64
	Log          LogConfig
	MySQL        MySQLConfig
	Redis        RedisConfig
	Queue        QueueConfig
	Table        TableConfig
	Limits       LimitConfig
	Security     SecurityConfig
	Metrics      MetricsConfig
}

type LogConfig struct {
	// 日志级别：debug、info、warn、error
	Level string
	// 输出格式：json 或 text
	Format string
}

type MySQLConfig struct {
	// 完整连接串；非空时优先于下方分项字段
	ConnString string
	Host       string
	Port       int
	User       string
	Password   string
	DBName     string
	Params     string
}

func (m MySQLConfig) DSN() string {
	if m.ConnString != "" {
		return m.ConnString
	}
	port := m.Port
	if port == 0 {
		port = 3306
	}
	host := m.Host
	if host == "" {
		host = "127.0.0.1"
	}
	db := m.DBName
	if db == "" {
		db = "funcapp"
	}
	params := m.Params
	if params == "" {
		params = "parseTime=true&loc=Local&charset=utf8mb4,utf8"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s", m.User, m.Password, host, port, db, params)
}

// DSNMasked 返回隐藏口令后的连接串，仅用于日志输出。
func (m MySQLConfig) DSNMasked() string {
	if m.ConnString != "" {
		at := strings.LastIndex(m.ConnString, "@")
		colon := strings.Index(m.ConnString, ":")
		if at > 0 && colon >= 0 && colon < at {
			return m.ConnString[:colon+1] + "******" + m.ConnString[at:]
		}
		return m.ConnString
	}
	masked := m
	if masked.Password != "" {
		masked.Password = "******"
	}
	return masked.DSN()
}

type RedisConfig struct {
	Addr     string
	DB       int
	Password string
}

// QueueConfig 描述队列输出目标（Redis 列表）。
type QueueConfig struct {
	Name string
}

// TableConfig 描述 SQL 输出目标表。
type TableConfig struct {
	Name string
	// 启动时是否对目标表执行 AutoMigrate；默认关闭（表结构通常预先创建）
	AutoMigrate bool
}

type LimitConfig struct {
	// 每个客户端 IP 在窗口内允许的函数调用次数；0 表示不限流
	PerMinute int
	Window    time.Duration
}

type SecurityConfig struct {
	HSTS struct {
		Enabled           bool
		MaxAgeSeconds     int
		IncludeSubdomains bool
	}
}

type MetricsConfig struct {
	Enable bool
}

// Load 生成配置：先使用内置默认值，再用同目录的配置文件（config.yaml/yml/json）覆盖。
// 默认：MySQL 127.0.0.1:3306 用户 root/123456；Redis 127.0.0.1:6379 无密码。
// 配置文件存在但无法读取或解析时返回错误，不会静默回退到默认连接。
func Load() (Config, error) {
	cfg := Defaults()
	if path := FirstExisting("config.yaml", "config.yml", "config.json"); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Defaults 返回内置默认配置（本地开发可直接运行）。
func Defaults() Config {
	cfg := Config{
		Env:          "dev",
		HTTPAddr:     ":8080",
		RoutePrefix:  "",
		MaxBodyBytes: 1 << 20,
		Log:          LogConfig{Level: "info", Format: "json"},
		MySQL:        MySQLConfig{Host: "127.0.0.1", Port: 3306, User: "root", Password: "123456", DBName: "funcapp", Params: "parseTime=true&loc=Local&charset=utf8mb4,utf8"},
		Redis:        RedisConfig{Addr: "127.0.0.1:6379", DB: 0, Password: ""},
		Queue:        QueueConfig{Name: "myqueue"},
		Table:        TableConfig{Name: "ToDo", AutoMigrate: false},
		Limits:       LimitConfig{PerMinute: 0, Window: time.Minute},
		Metrics:      MetricsConfig{Enable: true},
	}
	cfg.Security.HSTS.Enabled = true
	cfg.Security.HSTS.MaxAgeSeconds = 31536000
	cfg.Security.HSTS.IncludeSubdomains = true
	return cfg
}

// Validate 检查启动所需的关键配置。
func (c Config) Validate() error {
	if strings.TrimSpace(c.Queue.Name) == "" {
		return errors.New("queue.name must be set")
	}
	if strings.TrimSpace(c.Table.Name) == "" {
		return errors.New("table.name must be set")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("max_body_bytes must be positive")
	}
	if c.RoutePrefix != "" && !strings.HasPrefix(c.RoutePrefix, "/") {
		return fmt.Errorf("route_prefix must start with '/': %q", c.RoutePrefix)
	}
	// 生产环境基线检查：禁止默认弱口令进入生产。
	if c.Env == "prod" && c.MySQL.ConnString == "" {
		if c.MySQL.Password == "123456" || c.MySQL.Password == "password" || c.MySQL.Password == "" {
			return errors.New("insecure mysql password in prod; configure mysql.password or mysql.dsn")
		}
	}
	return nil
}

// LoadFile 读取 YAML 或 JSON 配置文件并覆盖 cfg。仅非零值会覆盖现有字段。
func LoadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var fm fileModel
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(b, &fm); err != nil {
			return err
		}
	} else if ext == ".json" || ext == "" {
		if err := json.Unmarshal(b, &fm); err != nil {
			return err
		}
	} else {
		return errors.New("unsupported config file format")
	}
	fm.apply(cfg)
	return nil
}

// --- 配置文件模型与合并逻辑 ---

type fileModel struct {
	Env          string        `yaml:"env" json:"env"`
	HTTPAddr     string        `yaml:"http_addr" json:"http_addr"`
	RoutePrefix  string        `yaml:"route_prefix" json:"route_prefix"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	Log          *fileLog      `yaml:"log" json:"log"`
	MySQL        *fileMySQL    `yaml:"mysql" json:"mysql"`
	Redis        *fileRedis    `yaml:"redis" json:"redis"`
	Queue        *fileQueue    `yaml:"queue" json:"queue"`
	Table        *fileTable    `yaml:"table" json:"table"`
	Limits       *fileLimits   `yaml:"limits" json:"limits"`
	Security     *fileSecurity `yaml:"security" json:"security"`
	Metrics      *fileMetrics  `yaml:"metrics" json:"metrics"`
}

type fileLog struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}
type fileMySQL struct {
	DSN      string `yaml:"dsn" json:"dsn"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	User     string `yaml:"user" json:"user"`
	Password string `yaml:"password" json:"password"`
	DBName   string `yaml:"db" json:"db"`
	Params   string `yaml:"params" json:"params"`
}
type fileRedis struct {
	Addr     string `yaml:"addr" json:"addr"`
	DB       int    `yaml:"db" json:"db"`
	Password string `yaml:"password" json:"password"`
}
type fileQueue struct {
	Name string `yaml:"name" json:"name"`
}
type fileTable struct {
	Name        string `yaml:"name" json:"name"`
	AutoMigrate *bool  `yaml:"auto_migrate" json:"auto_migrate"`
}
type fileLimits struct {
	PerMinute int    `yaml:"per_minute" json:"per_minute"`
	Window    string `yaml:"window" json:"window"`
}
type fileSecurity struct {
	HSTS struct {
		Enabled           *bool `yaml:"enabled" json:"enabled"`
		MaxAge            int   `yaml:"max_age" json:"max_age"`
		IncludeSubdomains *bool `yaml:"include_subdomains" json:"include_subdomains"`
	} `yaml:"hsts" json:"hsts"`
}
type fileMetrics struct {
	Enable *bool `yaml:"enable" json:"enable"`
}

func (fm *fileModel) apply(cfg *Config) {
	if fm.Env != "" {
		cfg.Env = fm.Env
	}
	if fm.HTTPAddr != "" {
		cfg.HTTPAddr = fm.HTTPAddr
	}
	if fm.RoutePrefix != "" {
		cfg.RoutePrefix = strings.TrimRight(fm.RoutePrefix, "/")
	}
	if fm.MaxBodyBytes != 0 {
		cfg.MaxBodyBytes = fm.MaxBodyBytes
	}
	if fm.Log != nil {
		if fm.Log.Level != "" {
			cfg.Log.Level = fm.Log.Level
		}
		if fm.Log.Format != "" {
			cfg.Log.Format = fm.Log.Format
		}
	}
	if fm.MySQL != nil {
		if fm.MySQL.DSN != "" {
			cfg.MySQL.ConnString = fm.MySQL.DSN
		}
		if fm.MySQL.Host != "" {
			cfg.MySQL.Host = fm.MySQL.Host
		}
		if fm.MySQL.Port != 0 {
			cfg.MySQL.Port = fm.MySQL.Port
		}
		if fm.MySQL.User != "" {
			cfg.MySQL.User = fm.MySQL.User
		}
		if fm.MySQL.Password != "" {
			cfg.MySQL.Password = fm.MySQL.Password
		}
		if fm.MySQL.DBName != "" {
			cfg.MySQL.DBName = fm.MySQL.DBName
		}
		if fm.MySQL.Params != "" {
			cfg.MySQL.Params = fm.MySQL.Params
		}
	}
	if fm.Redis != nil {
		if fm.Redis.Addr != "" {
			cfg.Redis.Addr = fm.Redis.Addr
		}
		if fm.Redis.DB != 0 {
			cfg.Redis.DB = fm.Redis.DB
		}
		if fm.Redis.Password != "" {
			cfg.Redis.Password = fm.Redis.Password
		}
	}
	if fm.Queue != nil && fm.Queue.Name != "" {
		cfg.Queue.Name = fm.Queue.Name
	}
	if fm.Table != nil {
		if fm.Table.Name != "" {
			cfg.Table.Name = fm.Table.Name
		}
		if fm.Table.AutoMigrate != nil {
			cfg.Table.AutoMigrate = *fm.Table.AutoMigrate
		}
	}
	if fm.Limits != nil {
		if fm.Limits.PerMinute != 0 {
			cfg.Limits.PerMinute = fm.Limits.PerMinute
		}
		if fm.Limits.Window != "" {
			if d, err := time.ParseDuration(fm.Limits.Window); err == nil {
				cfg.Limits.Window = d
			}
		}
	}
	if fm.Security != nil {
		if fm.Security.HSTS.Enabled != nil {
			cfg.Security.HSTS.Enabled = *fm.Security.HSTS.Enabled
		}
		if fm.Security.HSTS.MaxAge != 0 {
			cfg.Security.HSTS.MaxAgeSeconds = fm.Security.HSTS.MaxAge
		}
		if fm.Security.HSTS.IncludeSubdomains != nil {
			cfg.Security.HSTS.IncludeSubdomains = *fm.Security.HSTS.IncludeSubdomains
		}
	}
	if fm.Metrics != nil && fm.Metrics.Enable != nil {
		cfg.Metrics.Enable = *fm.Metrics.Enable
	}
}

// FirstExisting 按顺序返回第一个存在的文件路径；若都不存在则返回空字符串。
func FirstExisting(paths ...string) string {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
