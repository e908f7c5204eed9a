package repository

import (
	"context"
	"time"

	"github.com/lxKylin/meeting-room/internal/domain"
)

// BookingFilter 预定列表的查询条件。From/To 作用于开始时间，闭区间。
type BookingFilter struct {
	Status   domain.BookingStatus
	Username string
	RoomName string
	Location string
	From     *time.Time
	To       *time.Time
	Pagination
}

// BookingRepository 定义了预定数据的存储和检索操作。
type BookingRepository interface {
	// CreateExclusive 在同一个事务中锁定会议室行、检查时段冲突并插入预定。
	// 会议室不存在返回 ErrNotFound，与有效预定重叠返回 ErrConflict。
	CreateExclusive(ctx context.Context, booking *domain.Booking) error

	// FindByID 查找预定并加载用户和会议室。
	FindByID(ctx context.Context, id uint) (*domain.Booking, error)

	// UpdateStatus 在事务内锁定预定并修改审批状态。预定不存在返回 ErrNotFound，
	// 当前状态不允许流转到 status 时返回 ErrInvalidTransition。
	UpdateStatus(ctx context.Context, id uint, status domain.BookingStatus) error

	// Delete 物理删除，预定不存在时返回 ErrNotFound。
	Delete(ctx context.Context, id uint) error

	// List 分页查询，返回当前页和总数。
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, int64, error)

	// ExpireStale 将结束时间早于 before 的申请中预定改为 rejected，返回影响行数。
	ExpireStale(ctx context.Context, before time.Time) (int64, error)
}

// StatisticsRepository 统计查询，窗口作用于预定开始时间，闭区间。
type StatisticsRepository interface {
	CountByUser(ctx context.Context, start, end time.Time) ([]domain.UserBookingCount, error)
	CountByRoom(ctx context.Context, start, end time.Time) ([]domain.RoomUsageCount, error)
}
