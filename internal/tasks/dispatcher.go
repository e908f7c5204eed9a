package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// EmailMaxRetry 邮件任务的最大重试次数
const EmailMaxRetry = 3

// AsynqDispatcher 把任务投递到 asynq 队列
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewAsynqDispatcher 创建 AsynqDispatcher 实例
func NewAsynqDispatcher(client *asynq.Client) *AsynqDispatcher {
	if client == nil {
		panic("asynq client cannot be nil for AsynqDispatcher")
	}
	return &AsynqDispatcher{client: client}
}

// EnqueueEmail 投递一封邮件到 default 队列
func (d *AsynqDispatcher) EnqueueEmail(ctx context.Context, p EmailDeliveryPayload) error {
	payload, err := NewEmailDeliveryTask(p)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}
	task := asynq.NewTask(TypeEmailDelivery, payload)
	info, err := d.client.EnqueueContext(ctx, task,
		asynq.Queue("default"),
		asynq.MaxRetry(EmailMaxRetry),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue email task: %w", err)
	}
	logrus.WithFields(logrus.Fields{"task_id": info.ID, "to": p.To}).Debug("Email task enqueued")
	return nil
}
