package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/lxKylin/meeting-room/internal/domain"
	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/repository"
)

// RoomService 负责会议室管理相关的业务逻辑。
type RoomService struct {
	roomRepo repository.MeetingRoomRepository
}

// NewRoomService 创建 RoomService 实例。
func NewRoomService(roomRepo repository.MeetingRoomRepository) *RoomService {
	if roomRepo == nil {
		panic("MeetingRoomRepository cannot be nil for RoomService")
	}
	return &RoomService{roomRepo: roomRepo}
}

// Create 新建会议室，名称不能重复。
func (s *RoomService) Create(ctx context.Context, req dto.CreateMeetingRoomRequest) (*domain.MeetingRoom, error) {
	logCtx := logrus.WithField("room_name", req.Name)

	if _, err := s.roomRepo.FindByName(ctx, req.Name); err == nil {
		return nil, ErrRoomExists.WithPrefix(req.Name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		logCtx.WithError(err).Error("Failed to check room name")
		return nil, ErrInternalServer
	}

	room := &domain.MeetingRoom{
		Name:        req.Name,
		Capacity:    req.Capacity,
		Location:    req.Location,
		Equipment:   req.Equipment,
		Description: req.Description,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrRoomExists.WithPrefix(req.Name)
		}
		logCtx.WithError(err).Error("Failed to save new room to database")
		return nil, ErrInternalServer
	}

	logCtx.WithField("room_id", room.ID).Info("Meeting room created")
	return room, nil
}

// Get 按 ID 查找会议室。
func (s *RoomService) Get(ctx context.Context, id uint) (*domain.MeetingRoom, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		logrus.WithError(err).WithField("room_id", id).Error("Failed to load room")
		return nil, ErrInternalServer
	}
	return room, nil
}

// Update 修改会议室，改名时同样检查重名。
func (s *RoomService) Update(ctx context.Context, req dto.UpdateMeetingRoomRequest) (*domain.MeetingRoom, error) {
	logCtx := logrus.WithField("room_id", req.ID)

	room, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" && req.Name != room.Name {
		if _, err := s.roomRepo.FindByName(ctx, req.Name); err == nil {
			return nil, ErrRoomExists.WithPrefix(req.Name)
		} else if !errors.Is(err, repository.ErrNotFound) {
			logCtx.WithError(err).Error("Failed to check room name")
			return nil, ErrInternalServer
		}
		room.Name = req.Name
	}
	if req.Capacity > 0 {
		room.Capacity = req.Capacity
	}
	if req.Location != "" {
		room.Location = req.Location
	}
	if req.Equipment != nil {
		room.Equipment = *req.Equipment
	}
	if req.Description != nil {
		room.Description = *req.Description
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrRoomExists.WithPrefix(room.Name)
		}
		logCtx.WithError(err).Error("Failed to update room")
		return nil, ErrInternalServer
	}
	logCtx.Info("Meeting room updated")
	return room, nil
}

// Delete 删除会议室，其预定由外键级联删除。
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	if err := s.roomRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoomNotFound
		}
		logrus.WithError(err).WithField("room_id", id).Error("Failed to delete room")
		return ErrInternalServer
	}
	logrus.WithField("room_id", id).Info("Meeting room deleted")
	return nil
}

// List 分页查询会议室。
func (s *RoomService) List(ctx context.Context, q dto.MeetingRoomListQuery) (*dto.MeetingRoomListVO, error) {
	rooms, total, err := s.roomRepo.List(ctx, repository.RoomFilter{
		Name:       q.Name,
		Location:   q.Location,
		IsBooked:   q.IsBooked,
		Pagination: repository.Pagination{Page: q.PageNo, PageSize: q.PageSize},
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to list rooms")
		return nil, ErrInternalServer
	}
	if rooms == nil {
		rooms = []domain.MeetingRoom{}
	}
	return &dto.MeetingRoomListVO{Records: rooms, Total: total}, nil
}
