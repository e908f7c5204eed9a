package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lxKylin/meeting-room/internal/domain"
	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/infra/mail"
	"github.com/lxKylin/meeting-room/internal/repository"
	"github.com/lxKylin/meeting-room/internal/tasks"
)

const (
	// UrgeInterval 同一预定两次催办的最小间隔
	UrgeInterval = 30 * time.Minute
	// AdminEmailKey 管理员邮箱的缓存 key
	AdminEmailKey = "admin_email"

	urgeTimeLayout = "2006-01-02 15:04"
)

// EmailDispatcher 把邮件投递到异步队列
type EmailDispatcher interface {
	EnqueueEmail(ctx context.Context, p tasks.EmailDeliveryPayload) error
}

// BookingService 负责预定的创建、审批、催办和查询。
type BookingService struct {
	bookingRepo   repository.BookingRepository
	roomRepo      repository.MeetingRoomRepository
	userRepo      repository.UserRepository
	cache         repository.CacheRepository
	dispatcher    EmailDispatcher
	metrics       MetricsRecorder
	adminEmailTTL time.Duration
}

// NewBookingService 创建 BookingService 实例。
func NewBookingService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.MeetingRoomRepository,
	userRepo repository.UserRepository,
	cache repository.CacheRepository,
	dispatcher EmailDispatcher,
	metrics MetricsRecorder,
	adminEmailTTL time.Duration,
) *BookingService {
	if bookingRepo == nil || roomRepo == nil || userRepo == nil {
		panic("repositories cannot be nil for BookingService")
	}
	if cache == nil || dispatcher == nil {
		panic("CacheRepository and EmailDispatcher cannot be nil for BookingService")
	}
	if adminEmailTTL <= 0 {
		adminEmailTTL = time.Hour
	}
	return &BookingService{
		bookingRepo:   bookingRepo,
		roomRepo:      roomRepo,
		userRepo:      userRepo,
		cache:         cache,
		dispatcher:    dispatcher,
		metrics:       orNoop(metrics),
		adminEmailTTL: adminEmailTTL,
	}
}

// Create 为用户预定会议室，新预定处于 applying 状态。
// 冲突检查和写入在仓库层的同一事务中完成。
func (s *BookingService) Create(ctx context.Context, userID uint, req dto.CreateBookingRequest) (b *domain.Booking, err error) {
	defer func() { s.metrics.RecordBooking("create", err) }()

	start, end := dto.MillisToTime(req.StartTime), dto.MillisToTime(req.EndTime)
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "room_id": req.MeetingRoomID, "start": start, "end": end})
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}

	room, err := s.roomRepo.FindByID(ctx, req.MeetingRoomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		logCtx.WithError(err).Error("Failed to load room for booking")
		return nil, ErrInternalServer
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to load user for booking")
		return nil, ErrInternalServer
	}

	booking := &domain.Booking{
		StartTime: start,
		EndTime:   end,
		Status:    domain.BookingApplying,
		Note:      req.Note,
		UserID:    user.ID,
		RoomID:    room.ID,
	}
	if err := s.bookingRepo.CreateExclusive(ctx, booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			logCtx.Info("Booking rejected: time slot taken")
			return nil, ErrSlotBooked.WithPrefix(room.Name)
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrRoomNotFound
		}
		logCtx.WithError(err).Error("Failed to create booking")
		return nil, ErrInternalServer
	}
	booking.User = user
	booking.Room = room

	logCtx.WithField("booking_id", booking.ID).Info("Booking created")
	return booking, nil
}

// Approve 审批通过
func (s *BookingService) Approve(ctx context.Context, id uint) error {
	return s.transition(ctx, id, domain.BookingApproved, "approve")
}

// Reject 驳回
func (s *BookingService) Reject(ctx context.Context, id uint) error {
	return s.transition(ctx, id, domain.BookingRejected, "reject")
}

// Unbind 解除预定
func (s *BookingService) Unbind(ctx context.Context, id uint) error {
	return s.transition(ctx, id, domain.BookingUnbound, "unbind")
}

func (s *BookingService) transition(ctx context.Context, id uint, status domain.BookingStatus, action string) (err error) {
	defer func() { s.metrics.RecordBooking(action, err) }()

	logCtx := logrus.WithFields(logrus.Fields{"booking_id": id, "status": status})
	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		if errors.Is(err, repository.ErrInvalidTransition) {
			logCtx.WithError(err).Warn("Booking status change rejected")
			return ErrBookingStatus
		}
		logCtx.WithError(err).Error("Failed to update booking status")
		return ErrInternalServer
	}
	logCtx.Info("Booking status updated")
	return nil
}

// Delete 删除预定记录。
func (s *BookingService) Delete(ctx context.Context, id uint) (err error) {
	defer func() { s.metrics.RecordBooking("delete", err) }()

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		logrus.WithError(err).WithField("booking_id", id).Error("Failed to delete booking")
		return ErrInternalServer
	}
	logrus.WithField("booking_id", id).Info("Booking deleted")
	return nil
}

// Urge 提醒管理员尽快审批，同一预定 30 分钟内只能催办一次。
func (s *BookingService) Urge(ctx context.Context, id uint) (err error) {
	defer func() { s.metrics.RecordBooking("urge", err) }()
	logCtx := logrus.WithField("booking_id", id)

	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		logCtx.WithError(err).Error("Failed to load booking for urge")
		return ErrInternalServer
	}

	flagKey := "urge_" + strconv.FormatUint(uint64(id), 10)
	ok, err := s.cache.SetNX(ctx, flagKey, "1", UrgeInterval)
	if err != nil {
		logCtx.WithError(err).Error("Failed to set urge flag")
		return ErrInternalServer
	}
	if !ok {
		return ErrUrgeTooFrequent
	}

	// 通知没有发出去时撤销标记，允许用户重试
	release := func() {
		if delErr := s.cache.Delete(ctx, flagKey); delErr != nil {
			logCtx.WithError(delErr).Warn("Failed to release urge flag")
		}
	}

	adminEmail, err := s.adminEmail(ctx)
	if err != nil {
		release()
		return err
	}

	data := mail.UrgeData{
		BookingID: booking.ID,
		StartTime: booking.StartTime.Format(urgeTimeLayout),
		EndTime:   booking.EndTime.Format(urgeTimeLayout),
	}
	if booking.User != nil {
		data.Username = booking.User.Username
	}
	if booking.Room != nil {
		data.RoomName = booking.Room.Name
	}
	html, err := mail.RenderUrge(data)
	if err != nil {
		release()
		logCtx.WithError(err).Error("Failed to render urge email")
		return ErrInternalServer
	}

	if err := s.dispatcher.EnqueueEmail(ctx, tasks.EmailDeliveryPayload{
		To:      adminEmail,
		Subject: "预定申请催办提醒",
		HTML:    html,
	}); err != nil {
		release()
		logCtx.WithError(err).Error("Failed to enqueue urge email")
		return ErrSendFailed
	}

	logCtx.WithField("admin_email", adminEmail).Info("Urge notification enqueued")
	return nil
}

// adminEmail 优先读缓存，未命中时取第一个管理员并回填
func (s *BookingService) adminEmail(ctx context.Context) (string, error) {
	email, err := s.cache.Get(ctx, AdminEmailKey)
	if err == nil && email != "" {
		return email, nil
	}
	if err != nil && !errors.Is(err, repository.ErrCacheMiss) {
		logrus.WithError(err).Warn("Failed to read cached admin email, falling back to database")
	}

	admin, err := s.userRepo.FindFirstAdmin(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrAdminNotFound
		}
		logrus.WithError(err).Error("Failed to load administrator")
		return "", ErrInternalServer
	}
	if admin.Email == "" {
		return "", ErrAdminNotFound
	}

	if err := s.cache.Set(ctx, AdminEmailKey, admin.Email, s.adminEmailTTL); err != nil {
		logrus.WithError(err).Warn("Failed to cache admin email")
	}
	return admin.Email, nil
}

// List 按状态、用户名、会议室、时间范围分页查询预定。
func (s *BookingService) List(ctx context.Context, q dto.BookingListQuery) (*dto.BookingListVO, error) {
	filter := repository.BookingFilter{
		Status:     domain.BookingStatus(q.Status),
		Username:   q.Username,
		RoomName:   q.MeetingRoomName,
		Location:   q.MeetingRoomPosition,
		Pagination: repository.Pagination{Page: q.PageNo, PageSize: q.PageSize},
	}
	if q.BookingTimeRangeStart > 0 {
		from := dto.MillisToTime(q.BookingTimeRangeStart)
		filter.From = &from
	}
	if q.BookingTimeRangeEnd > 0 {
		to := dto.MillisToTime(q.BookingTimeRangeEnd)
		filter.To = &to
	}

	bookings, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		logrus.WithError(err).Error("Failed to list bookings")
		return nil, ErrInternalServer
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return &dto.BookingListVO{Records: bookings, Total: total}, nil
}
