package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lxKylin/meeting-room/internal/infra/mail"
	"github.com/lxKylin/meeting-room/internal/repository/mocks"
	"github.com/lxKylin/meeting-room/internal/tasks"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, msg mail.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func TestEmailDeliveryHandler_Success(t *testing.T) {
	mailer := new(mockMailer)
	var results []bool
	h := NewEmailDeliveryHandler(mailer, func(ok bool) { results = append(results, ok) })

	payload, err := tasks.NewEmailDeliveryTask(tasks.EmailDeliveryPayload{To: "admin@example.com", Subject: "催办", HTML: "<p>hi</p>"})
	require.NoError(t, err)
	ctx := context.Background()

	mailer.On("Send", ctx, mail.Message{To: "admin@example.com", Subject: "催办", HTML: "<p>hi</p>"}).Return(nil).Once()

	err = h.ProcessTask(ctx, asynq.NewTask(tasks.TypeEmailDelivery, payload))

	assert.NoError(t, err)
	assert.Equal(t, []bool{true}, results)
	mailer.AssertExpectations(t)
}

func TestEmailDeliveryHandler_SendFails(t *testing.T) {
	mailer := new(mockMailer)
	h := NewEmailDeliveryHandler(mailer, nil)
	payload, _ := tasks.NewEmailDeliveryTask(tasks.EmailDeliveryPayload{To: "admin@example.com"})

	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeEmailDelivery, payload))

	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry, "发送失败应允许重试")
}

func TestEmailDeliveryHandler_BadPayload(t *testing.T) {
	mailer := new(mockMailer)
	h := NewEmailDeliveryHandler(mailer, nil)

	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeEmailDelivery, []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestBookingSweepHandler(t *testing.T) {
	repo := new(mocks.BookingRepository)
	h := NewBookingSweepHandler(repo)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }
	payload, _ := tasks.NewBookingSweepTask()

	repo.On("ExpireStale", mock.Anything, now).Return(int64(2), nil).Once()

	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeBookingSweep, payload))

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
