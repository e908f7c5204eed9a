package tasks

import (
	"encoding/json"
)

// 定义任务类型常量
const (
	TypeEmailDelivery = "email:deliver" // 异步发送邮件
	TypeBookingSweep  = "booking:sweep" // 周期性清理过期的申请
)

// EmailDeliveryPayload 邮件任务的数据结构
type EmailDeliveryPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// NewEmailDeliveryTask 序列化邮件任务的 payload
func NewEmailDeliveryTask(p EmailDeliveryPayload) ([]byte, error) {
	return json.Marshal(p)
}

// BookingSweepPayload 周期清理任务目前不需要参数
type BookingSweepPayload struct{}

// NewBookingSweepTask 序列化清理任务的 payload
func NewBookingSweepTask() ([]byte, error) {
	return json.Marshal(BookingSweepPayload{})
}
