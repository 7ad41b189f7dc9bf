// Package config 负责加载与解析进程配置，支持 YAML/JSON 配置文件与默认值合并。
// 队列名、目标表名与两类连接设置（Redis、MySQL）都从这里读取。
package config
