package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lxKylin/meeting-room/internal/domain"
	"github.com/lxKylin/meeting-room/internal/repository"
)

// GormBookingRepository 是 BookingRepository 和 StatisticsRepository 的 GORM 实现
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository 创建 GormBookingRepository 实例
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	if db == nil {
		panic("database connection cannot be nil for GormBookingRepository")
	}
	return &GormBookingRepository{db: db}
}

func activeStatuses() []string {
	statuses := make([]string, 0, len(domain.ActiveBookingStatuses))
	for _, s := range domain.ActiveBookingStatuses {
		statuses = append(statuses, string(s))
	}
	return statuses
}

// CreateExclusive 检查冲突和插入在同一事务内完成。
// 会议室行上的 FOR UPDATE 锁让同一会议室的并发预定串行执行。
func (r *GormBookingRepository) CreateExclusive(ctx context.Context, booking *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room domain.MeetingRoom
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, booking.RoomID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrRoomNotFound
			}
			return fmt.Errorf("gorm: lock meeting room %d: %w", booking.RoomID, err)
		}

		var count int64
		err = tx.Model(&domain.Booking{}).
			Where("room_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				booking.RoomID, activeStatuses(), booking.EndTime, booking.StartTime).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("gorm: check booking overlap for room %d: %w", booking.RoomID, err)
		}
		if count > 0 {
			return repository.ErrConflict
		}

		if err := tx.Omit(clause.Associations).Create(booking).Error; err != nil {
			return fmt.Errorf("gorm: create booking for room %d: %w", booking.RoomID, err)
		}
		booking.Room = &room
		return nil
	})
}

// FindByID 查找预定并加载用户和会议室
func (r *GormBookingRepository) FindByID(ctx context.Context, id uint) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.WithContext(ctx).Preload("User").Preload("Room").First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookingNotFound
		}
		return nil, fmt.Errorf("gorm: find booking by id %d: %w", id, err)
	}
	return &booking, nil
}

// UpdateStatus 锁定预定行后按流转规则修改状态
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id uint, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking domain.Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrBookingNotFound
			}
			return fmt.Errorf("gorm: lock booking %d: %w", id, err)
		}
		if !booking.Status.CanTransition(status) {
			return fmt.Errorf("%w: %s -> %s", repository.ErrInvalidTransition, booking.Status, status)
		}
		if err := tx.Model(&booking).Update("status", status).Error; err != nil {
			return fmt.Errorf("gorm: update booking %d status to %s: %w", id, status, err)
		}
		return nil
	})
}

// Delete 物理删除预定
func (r *GormBookingRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Booking{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete booking %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookingNotFound
	}
	return nil
}

// List 关联用户和会议室表做过滤，分页返回
func (r *GormBookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Joins("JOIN users ON users.id = booking.user_id").
		Joins("JOIN meeting_room ON meeting_room.id = booking.room_id")
	if filter.Status != "" {
		query = query.Where("booking.status = ?", filter.Status)
	}
	if filter.Username != "" {
		query = query.Where("users.username LIKE ?", likePattern(filter.Username))
	}
	if filter.RoomName != "" {
		query = query.Where("meeting_room.name LIKE ?", likePattern(filter.RoomName))
	}
	if filter.Location != "" {
		query = query.Where("meeting_room.location LIKE ?", likePattern(filter.Location))
	}
	if filter.From != nil {
		query = query.Where("booking.start_time >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("booking.start_time <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gorm: count bookings: %w", err)
	}

	var bookings []domain.Booking
	err := query.Preload("User").Preload("Room").
		Order("booking.start_time DESC").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gorm: list bookings: %w", err)
	}
	return bookings, total, nil
}

// ExpireStale 结束时间已过仍在申请中的预定视为驳回
func (r *GormBookingRepository) ExpireStale(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("status = ? AND end_time < ?", domain.BookingApplying, before).
		Update("status", domain.BookingRejected)
	if result.Error != nil {
		return 0, fmt.Errorf("gorm: expire stale bookings before %s: %w", before.Format(time.RFC3339), result.Error)
	}
	return result.RowsAffected, nil
}

// CountByUser 按用户统计窗口内的预定次数
func (r *GormBookingRepository) CountByUser(ctx context.Context, start, end time.Time) ([]domain.UserBookingCount, error) {
	var rows []domain.UserBookingCount
	err := r.db.WithContext(ctx).Table("booking AS b").
		Select("u.id AS user_id, u.username AS username, COUNT(1) AS booking_count").
		Joins("LEFT JOIN users u ON b.user_id = u.id").
		Where("b.start_time BETWEEN ? AND ?", start, end).
		Group("b.user_id, u.id, u.username").
		Order("booking_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: count bookings by user: %w", err)
	}
	return rows, nil
}

// CountByRoom 按会议室统计窗口内的使用次数
func (r *GormBookingRepository) CountByRoom(ctx context.Context, start, end time.Time) ([]domain.RoomUsageCount, error) {
	var rows []domain.RoomUsageCount
	err := r.db.WithContext(ctx).Table("booking AS b").
		Select("m.id AS meeting_room_id, m.name AS meeting_room_name, COUNT(1) AS used_count").
		Joins("LEFT JOIN meeting_room m ON b.room_id = m.id").
		Where("b.start_time BETWEEN ? AND ?", start, end).
		Group("b.room_id, m.id, m.name").
		Order("used_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: count bookings by room: %w", err)
	}
	return rows, nil
}
