package services

// 队列函数的输入解析：查询参数优先，其次回退到 JSON 请求体。

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

// QueueMessage 为写入队列的消息体。
type QueueMessage struct {
	Name string `json:"name"`
}

// ResolveName 依次从查询参数与 JSON 请求体中取出 name。
// 请求体解析失败、字段缺失、非字符串或为空均视为未提供（第二个返回值为 false）。
func ResolveName(query url.Values, body []byte) (string, bool) {
	if name := query.Get("name"); name != "" {
		return name, true
	}
	if len(body) == 0 {
		return "", false
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return "", false
	}
	name, ok := obj["name"].(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// EncodeQueueMessage 将 name 序列化为 {"name": ...} 文本；不转义 HTML 字符，保持原值。
func EncodeQueueMessage(name string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(QueueMessage{Name: name}); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
