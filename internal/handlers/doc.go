// Package handlers 暴露 HTTP 层接口，负责路由注册、请求体读取与错误到状态码的映射。
// handlers 内部聚焦输入/输出转换，并委托 services 层完成消息组装与写入。
package handlers
