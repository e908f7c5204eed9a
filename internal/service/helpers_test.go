package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/lxKylin/meeting-room/internal/domain"
	"github.com/lxKylin/meeting-room/internal/infra/mail"
	"github.com/lxKylin/meeting-room/internal/service"
	"github.com/lxKylin/meeting-room/internal/tasks"
)

// fakeMailer 记录发送的邮件
type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

// fakeDispatcher 记录投递的邮件任务
type fakeDispatcher struct {
	queued []tasks.EmailDeliveryPayload
	err    error
}

func (f *fakeDispatcher) EnqueueEmail(_ context.Context, p tasks.EmailDeliveryPayload) error {
	if f.err != nil {
		return f.err
	}
	f.queued = append(f.queued, p)
	return nil
}

// fakeMetrics 记录业务指标调用
type fakeMetrics struct {
	captchas []string
	bookings map[string]int
	failures map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{bookings: map[string]int{}, failures: map[string]int{}}
}

func (f *fakeMetrics) RecordCaptcha(purpose string) { f.captchas = append(f.captchas, purpose) }

func (f *fakeMetrics) RecordBooking(action string, err error) {
	if err != nil {
		f.failures[action]++
		return
	}
	f.bookings[action]++
}

func newTestIssuer() *service.TokenIssuer {
	issuer, err := service.NewTokenIssuer("test-secret", 30*time.Minute, 7*24*time.Hour)
	if err != nil {
		panic(err)
	}
	return issuer
}

func userWithRoles() *domain.User {
	return &domain.User{
		ID:       7,
		Username: "zhangsan",
		Email:    "zhangsan@example.com",
		Roles: []domain.Role{
			{ID: 2, Name: domain.RoleUser, Permissions: []domain.Permission{{Code: domain.PermStatisticsView}}},
		},
	}
}
