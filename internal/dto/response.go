package dto

import "time"

// timestampLayout ISO-8601，精确到毫秒
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// SuccessEnvelope 成功响应 {status, data, timestamp, path}
type SuccessEnvelope struct {
	Status    int         `json:"status"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
	Path      string      `json:"path"`
}

// ErrorEnvelope 失败响应 {status, msg, timestamp, path}，校验失败时附带字段列表
type ErrorEnvelope struct {
	Status    int      `json:"status"`
	Msg       string   `json:"msg"`
	Fields    []string `json:"fields,omitempty"`
	Timestamp string   `json:"timestamp"`
	Path      string   `json:"path"`
}

// NewSuccess 构造成功响应
func NewSuccess(status int, data interface{}, path string) SuccessEnvelope {
	return SuccessEnvelope{Status: status, Data: data, Timestamp: now(), Path: path}
}

// NewError 构造失败响应
func NewError(status int, msg, path string) ErrorEnvelope {
	return ErrorEnvelope{Status: status, Msg: msg, Timestamp: now(), Path: path}
}

func now() string {
	return time.Now().UTC().Format(timestampLayout)
}
