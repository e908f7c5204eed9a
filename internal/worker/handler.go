package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/lxKylin/meeting-room/internal/infra/mail"
	"github.com/lxKylin/meeting-room/internal/repository"
	"github.com/lxKylin/meeting-room/internal/tasks"
)

// MailSender 发送一封邮件
type MailSender interface {
	Send(ctx context.Context, msg mail.Message) error
}

// taskLogger 从 task 和 context 中提取通用日志字段
func taskLogger(ctx context.Context, t *asynq.Task) *logrus.Entry {
	taskID := ""
	if rw := t.ResultWriter(); rw != nil {
		taskID = rw.TaskID()
	}
	currentRetry, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	return logrus.WithFields(logrus.Fields{
		"task_id":   taskID,
		"task_type": t.Type(),
		"retry":     currentRetry,
		"max_retry": maxRetry,
	})
}

// EmailDeliveryHandler 处理邮件发送任务
type EmailDeliveryHandler struct {
	mailer MailSender
	onDone func(success bool)
}

// NewEmailDeliveryHandler 创建 Handler 实例
func NewEmailDeliveryHandler(mailer MailSender, onDone func(bool)) *EmailDeliveryHandler {
	if mailer == nil {
		panic("mailer cannot be nil for EmailDeliveryHandler")
	}
	return &EmailDeliveryHandler{mailer: mailer, onDone: onDone}
}

// ProcessTask 实现 asynq.Handler 接口
func (h *EmailDeliveryHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := taskLogger(ctx, t)

	var payload tasks.EmailDeliveryPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal task payload")
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	logCtx = logCtx.WithField("to", payload.To)

	err := h.mailer.Send(ctx, mail.Message{To: payload.To, Subject: payload.Subject, HTML: payload.HTML})
	if h.onDone != nil {
		h.onDone(err == nil)
	}
	if err != nil {
		logCtx.WithError(err).Warn("Email delivery failed")
		return fmt.Errorf("deliver email to %s: %w", payload.To, err)
	}

	logCtx.Info("Email delivery task processed successfully")
	return nil
}

// BookingSweepHandler 把已过期仍在申请中的预定改为驳回
type BookingSweepHandler struct {
	bookingRepo repository.BookingRepository
	now         func() time.Time
}

// NewBookingSweepHandler 创建 Handler 实例
func NewBookingSweepHandler(bookingRepo repository.BookingRepository) *BookingSweepHandler {
	if bookingRepo == nil {
		panic("BookingRepository cannot be nil for BookingSweepHandler")
	}
	return &BookingSweepHandler{bookingRepo: bookingRepo, now: time.Now}
}

// ProcessTask 实现 asynq.Handler 接口
func (h *BookingSweepHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := taskLogger(ctx, t)

	n, err := h.bookingRepo.ExpireStale(ctx, h.now())
	if err != nil {
		logCtx.WithError(err).Error("Failed to expire stale bookings")
		return err
	}
	if n > 0 {
		logCtx.WithField("expired", n).Info("Stale booking applications rejected")
	}
	return nil
}
