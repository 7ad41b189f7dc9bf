package services

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrorKind 标识函数调用失败的类别，handlers 据此决定响应状态码。
type ErrorKind string

const (
	// BodyParseError 请求体无法解析为期望的 JSON 对象。
	BodyParseError ErrorKind = "body_parse"
	// SinkWriteError 写入队列或数据表失败。
	SinkWriteError ErrorKind = "sink_write"
)

// Error 携带错误类别与底层错误；Error() 仅返回底层错误文本，便于原样回显给调用方。
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// NewError 以指定类别包装 err。
func NewError(kind ErrorKind, err error) error { return &Error{Kind: kind, Err: err} }

func parseError(err error) error { return &Error{Kind: BodyParseError, Err: err} }

func sinkError(err error) error { return &Error{Kind: SinkWriteError, Err: err} }

// KindOf 返回 err 链中的错误类别；非本包错误返回空字符串。
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// SinkErrorDetail 为日志补充驱动层细节：MySQL 错误附带错误号。
func SinkErrorDetail(err error) string {
	if err == nil {
		return ""
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return fmt.Sprintf("mysql error %d: %s", me.Number, me.Message)
	}
	return err.Error()
}
