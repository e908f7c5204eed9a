package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxKylin/meeting-room/internal/domain"
	"github.com/lxKylin/meeting-room/internal/repository/mocks"
	"github.com/lxKylin/meeting-room/internal/service"
)

func TestStatisticsService(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 10, 31, 23, 59, 59, 0, time.Local)

	repo := new(mocks.StatisticsRepository)
	svc := service.NewStatisticsService(repo)

	repo.On("CountByUser", ctx, start, end).Return([]domain.UserBookingCount{{UserID: 7, Username: "zhangsan", BookingCount: 3}}, nil).Once()
	repo.On("CountByRoom", ctx, start, end).Return(nil, nil).Once()

	users, err := svc.UserBookingCount(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(3), users[0].BookingCount)

	rooms, err := svc.MeetingRoomUsedCount(ctx, start, end)
	require.NoError(t, err)
	assert.NotNil(t, rooms)
	assert.Empty(t, rooms)
	repo.AssertExpectations(t)
}

func TestStatisticsService_Errors(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local)
	repo := new(mocks.StatisticsRepository)
	svc := service.NewStatisticsService(repo)

	_, err := svc.UserBookingCount(ctx, start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, service.ErrInvalidTimeRange)

	repo.On("CountByRoom", ctx, start, start).Return(nil, errors.New("db down")).Once()
	_, err = svc.MeetingRoomUsedCount(ctx, start, start)
	assert.ErrorIs(t, err, service.ErrInternalServer)
}
