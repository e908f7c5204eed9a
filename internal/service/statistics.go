package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lxKylin/meeting-room/internal/domain"
	"github.com/lxKylin/meeting-room/internal/repository"
)

// StatisticsService 按时间窗口统计预定次数。
type StatisticsService struct {
	statsRepo repository.StatisticsRepository
}

// NewStatisticsService 创建 StatisticsService 实例。
func NewStatisticsService(statsRepo repository.StatisticsRepository) *StatisticsService {
	if statsRepo == nil {
		panic("StatisticsRepository cannot be nil for StatisticsService")
	}
	return &StatisticsService{statsRepo: statsRepo}
}

// UserBookingCount 每个用户在 [start, end] 内发起的预定数。
func (s *StatisticsService) UserBookingCount(ctx context.Context, start, end time.Time) ([]domain.UserBookingCount, error) {
	if start.After(end) {
		return nil, ErrInvalidTimeRange
	}
	rows, err := s.statsRepo.CountByUser(ctx, start, end)
	if err != nil {
		logrus.WithError(err).Error("Failed to count bookings by user")
		return nil, ErrInternalServer
	}
	if rows == nil {
		rows = []domain.UserBookingCount{}
	}
	return rows, nil
}

// MeetingRoomUsedCount 每间会议室在 [start, end] 内被预定的次数。
func (s *StatisticsService) MeetingRoomUsedCount(ctx context.Context, start, end time.Time) ([]domain.RoomUsageCount, error) {
	if start.After(end) {
		return nil, ErrInvalidTimeRange
	}
	rows, err := s.statsRepo.CountByRoom(ctx, start, end)
	if err != nil {
		logrus.WithError(err).Error("Failed to count bookings by room")
		return nil, ErrInternalServer
	}
	if rows == nil {
		rows = []domain.RoomUsageCount{}
	}
	return rows, nil
}
