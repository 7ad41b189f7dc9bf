// Package storage 提供底层连接适配：MySQL（GORM）与 Redis 的初始化、待办表模型声明与自动迁移。
// 其它层应通过 services 间接访问存储，以便集中处理错误分类与指标。
package storage
