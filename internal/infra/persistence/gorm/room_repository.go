package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lxKylin/meeting-room/internal/domain"
	"github.com/lxKylin/meeting-room/internal/repository"
)

// GormMeetingRoomRepository 是 MeetingRoomRepository 接口的 GORM 实现
type GormMeetingRoomRepository struct {
	db *gorm.DB
}

// NewGormMeetingRoomRepository 创建 GormMeetingRoomRepository 实例
func NewGormMeetingRoomRepository(db *gorm.DB) *GormMeetingRoomRepository {
	if db == nil {
		panic("database connection cannot be nil for GormMeetingRoomRepository")
	}
	return &GormMeetingRoomRepository{db: db}
}

// FindByID 实现根据会议室 ID 查找
func (r *GormMeetingRoomRepository) FindByID(ctx context.Context, id uint) (*domain.MeetingRoom, error) {
	var room domain.MeetingRoom
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}
		return nil, fmt.Errorf("gorm: find meeting room by id %d: %w", id, err)
	}
	return &room, nil
}

// FindByName 实现根据名称查找
func (r *GormMeetingRoomRepository) FindByName(ctx context.Context, name string) (*domain.MeetingRoom, error) {
	var room domain.MeetingRoom
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}
		return nil, fmt.Errorf("gorm: find meeting room by name '%s': %w", name, err)
	}
	return &room, nil
}

// Create 插入会议室
func (r *GormMeetingRoomRepository) Create(ctx context.Context, room *domain.MeetingRoom) error {
	err := r.db.WithContext(ctx).Create(room).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create meeting room (name: %s): %w", room.Name, err)
	}
	return nil
}

// Update 保存会议室全部字段
func (r *GormMeetingRoomRepository) Update(ctx context.Context, room *domain.MeetingRoom) error {
	err := r.db.WithContext(ctx).Save(room).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: update meeting room (id: %d, name: %s): %w", room.ID, room.Name, err)
	}
	return nil
}

// Delete 删除会议室，关联预定由外键级联删除
func (r *GormMeetingRoomRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.MeetingRoom{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete meeting room %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrRoomNotFound
	}
	return nil
}

// List 分页查询会议室
func (r *GormMeetingRoomRepository) List(ctx context.Context, filter repository.RoomFilter) ([]domain.MeetingRoom, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.MeetingRoom{})
	if filter.Name != "" {
		query = query.Where("name LIKE ?", likePattern(filter.Name))
	}
	if filter.Location != "" {
		query = query.Where("location LIKE ?", likePattern(filter.Location))
	}
	if filter.IsBooked != nil {
		query = query.Where("is_booked = ?", *filter.IsBooked)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gorm: count meeting rooms: %w", err)
	}

	var rooms []domain.MeetingRoom
	err := query.Order("id").Offset(filter.Offset()).Limit(filter.Limit()).Find(&rooms).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gorm: list meeting rooms: %w", err)
	}
	return rooms, total, nil
}
