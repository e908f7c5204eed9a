package repository

import (
	"context"

	"github.com/lxKylin/meeting-room/internal/domain"
)

// RoomFilter 会议室列表的查询条件。
type RoomFilter struct {
	Name     string
	Location string
	IsBooked *bool
	Pagination
}

// MeetingRoomRepository 定义了会议室数据的存储和检索操作。
type MeetingRoomRepository interface {
	// FindByID 如果会议室不存在，返回 ErrNotFound。
	FindByID(ctx context.Context, id uint) (*domain.MeetingRoom, error)

	// FindByName 按名称精确查找。
	FindByName(ctx context.Context, name string) (*domain.MeetingRoom, error)

	// Create 名称冲突时返回 ErrDuplicateEntry。
	Create(ctx context.Context, room *domain.MeetingRoom) error

	// Update 保存全部字段。
	Update(ctx context.Context, room *domain.MeetingRoom) error

	// Delete 会议室不存在时返回 ErrNotFound。
	Delete(ctx context.Context, id uint) error

	// List 分页查询，按 ID 升序。
	List(ctx context.Context, filter RoomFilter) ([]domain.MeetingRoom, int64, error)
}
