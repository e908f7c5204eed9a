package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lxKylin/meeting-room/internal/domain"
	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/repository"
	"github.com/lxKylin/meeting-room/internal/repository/mocks"
	"github.com/lxKylin/meeting-room/internal/service"
)

type bookingFixture struct {
	bookings   *mocks.BookingRepository
	rooms      *mocks.MeetingRoomRepository
	users      *mocks.UserRepository
	cache      *mocks.CacheRepository
	dispatcher *fakeDispatcher
	metrics    *fakeMetrics
	svc        *service.BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookings:   new(mocks.BookingRepository),
		rooms:      new(mocks.MeetingRoomRepository),
		users:      new(mocks.UserRepository),
		cache:      new(mocks.CacheRepository),
		dispatcher: &fakeDispatcher{},
		metrics:    newFakeMetrics(),
	}
	f.svc = service.NewBookingService(f.bookings, f.rooms, f.users, f.cache, f.dispatcher, f.metrics, time.Hour)
	return f
}

var jupiter = &domain.MeetingRoom{ID: 1, Name: "Jupiter", Capacity: 10, Location: "301"}

func TestBookingService_Create_Success(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, time.Local)
	req := dto.CreateBookingRequest{MeetingRoomID: 1, StartTime: start.UnixMilli(), EndTime: start.Add(time.Hour).UnixMilli(), Note: "周会"}

	f.rooms.On("FindByID", ctx, uint(1)).Return(jupiter, nil).Once()
	f.users.On("FindByID", ctx, uint(7)).Return(userWithRoles(), nil).Once()
	f.bookings.On("CreateExclusive", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.RoomID == 1 && b.UserID == 7 &&
			b.Status == domain.BookingApplying &&
			b.StartTime.Equal(start) && b.EndTime.Equal(start.Add(time.Hour))
	})).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Booking).ID = 11 }).
		Return(nil).Once()

	booking, err := f.svc.Create(ctx, 7, req)
	require.NoError(t, err)
	assert.Equal(t, uint(11), booking.ID)
	assert.Equal(t, domain.BookingApplying, booking.Status)
	assert.Equal(t, "Jupiter", booking.Room.Name)
	assert.Equal(t, 1, f.metrics.bookings["create"])
	f.bookings.AssertExpectations(t)
}

func TestBookingService_Create_SlotTaken(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	start := time.Date(2026, 10, 20, 9, 30, 0, 0, time.Local)
	req := dto.CreateBookingRequest{MeetingRoomID: 1, StartTime: start.UnixMilli(), EndTime: start.Add(15 * time.Minute).UnixMilli()}

	f.rooms.On("FindByID", ctx, uint(1)).Return(jupiter, nil).Once()
	f.users.On("FindByID", ctx, uint(8)).Return(&domain.User{ID: 8, Username: "lisi"}, nil).Once()
	f.bookings.On("CreateExclusive", ctx, mock.Anything).Return(repository.ErrConflict).Once()

	_, err := f.svc.Create(ctx, 8, req)
	assert.ErrorIs(t, err, service.ErrSlotBooked)
	assert.Equal(t, "Jupiter this time slot is already booked", err.Error())
	assert.Equal(t, 1, f.metrics.failures["create"])
}

func TestBookingService_Create_MissingRoomOrUser(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(time.Hour)
	req := dto.CreateBookingRequest{MeetingRoomID: 404, StartTime: start.UnixMilli(), EndTime: start.Add(time.Hour).UnixMilli()}

	f := newBookingFixture()
	f.rooms.On("FindByID", ctx, uint(404)).Return(nil, repository.ErrRoomNotFound).Once()
	_, err := f.svc.Create(ctx, 7, req)
	assert.ErrorIs(t, err, service.ErrRoomNotFound)
	assert.Equal(t, "room does not exist", err.Error())

	f = newBookingFixture()
	req.MeetingRoomID = 1
	f.rooms.On("FindByID", ctx, uint(1)).Return(jupiter, nil).Once()
	f.users.On("FindByID", ctx, uint(7)).Return(nil, repository.ErrUserNotFound).Once()
	_, err = f.svc.Create(ctx, 7, req)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	f = newBookingFixture()
	f.rooms.On("FindByID", ctx, uint(1)).Return(jupiter, nil).Once()
	f.users.On("FindByID", ctx, uint(7)).Return(userWithRoles(), nil).Once()
	f.bookings.On("CreateExclusive", ctx, mock.Anything).Return(repository.ErrNotFound).Once()
	_, err = f.svc.Create(ctx, 7, req)
	assert.ErrorIs(t, err, service.ErrRoomNotFound, "会议室在加锁前被删除")
}

func TestBookingService_Create_InvalidRange(t *testing.T) {
	f := newBookingFixture()
	now := time.Now()
	_, err := f.svc.Create(context.Background(), 7, dto.CreateBookingRequest{MeetingRoomID: 1, StartTime: now.UnixMilli(), EndTime: now.UnixMilli()})
	assert.ErrorIs(t, err, service.ErrInvalidTimeRange)
	f.rooms.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestBookingService_Transitions(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()

	f.bookings.On("UpdateStatus", ctx, uint(1), domain.BookingApproved).Return(nil).Once()
	f.bookings.On("UpdateStatus", ctx, uint(2), domain.BookingRejected).Return(nil).Once()
	f.bookings.On("UpdateStatus", ctx, uint(3), domain.BookingUnbound).Return(nil).Once()
	f.bookings.On("UpdateStatus", ctx, uint(404), domain.BookingApproved).Return(repository.ErrNotFound).Once()

	assert.NoError(t, f.svc.Approve(ctx, 1))
	assert.NoError(t, f.svc.Reject(ctx, 2))
	assert.NoError(t, f.svc.Unbind(ctx, 3))
	err := f.svc.Approve(ctx, 404)
	assert.ErrorIs(t, err, service.ErrBookingNotFound)

	assert.Equal(t, 1, f.metrics.bookings["approve"])
	assert.Equal(t, 1, f.metrics.failures["approve"])
	f.bookings.AssertExpectations(t)
}

func TestBookingService_Approve_AfterReject(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	f.bookings.On("UpdateStatus", ctx, uint(9), domain.BookingApproved).
		Return(fmt.Errorf("%w: rejected -> approved", repository.ErrInvalidTransition)).Once()

	err := f.svc.Approve(ctx, 9)

	assert.ErrorIs(t, err, service.ErrBookingStatus)
	be, ok := service.AsBusinessError(err)
	require.True(t, ok)
	assert.Equal(t, 400, be.Code)
	f.bookings.AssertExpectations(t)
}

func TestBookingService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	f.bookings.On("Delete", ctx, uint(5)).Return(nil).Once()
	f.bookings.On("Delete", ctx, uint(6)).Return(errors.New("db down")).Once()

	assert.NoError(t, f.svc.Delete(ctx, 5))
	assert.ErrorIs(t, f.svc.Delete(ctx, 6), service.ErrInternalServer)
}

func pendingBooking() *domain.Booking {
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, time.Local)
	return &domain.Booking{
		ID: 3, StartTime: start, EndTime: start.Add(time.Hour), Status: domain.BookingApplying,
		User: &domain.User{ID: 7, Username: "zhangsan"}, Room: jupiter,
	}
}

func TestBookingService_Urge_FirstCallLoadsAdminAndEnqueues(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()

	f.bookings.On("FindByID", ctx, uint(3)).Return(pendingBooking(), nil).Once()
	f.cache.On("SetNX", ctx, "urge_3", "1", service.UrgeInterval).Return(true, nil).Once()
	f.cache.On("Get", ctx, service.AdminEmailKey).Return("", repository.ErrCacheMiss).Once()
	f.users.On("FindFirstAdmin", ctx).Return(&domain.User{ID: 1, Email: "admin@example.com", IsAdmin: true}, nil).Once()
	f.cache.On("Set", ctx, service.AdminEmailKey, "admin@example.com", time.Hour).Return(nil).Once()

	require.NoError(t, f.svc.Urge(ctx, 3))

	require.Len(t, f.dispatcher.queued, 1)
	assert.Equal(t, "admin@example.com", f.dispatcher.queued[0].To)
	assert.Contains(t, f.dispatcher.queued[0].HTML, "Jupiter")
	assert.Contains(t, f.dispatcher.queued[0].HTML, "zhangsan")
	f.cache.AssertExpectations(t)
	f.users.AssertExpectations(t)
}

func TestBookingService_Urge_ThrottledWithinInterval(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()

	f.bookings.On("FindByID", ctx, uint(3)).Return(pendingBooking(), nil).Once()
	f.cache.On("SetNX", ctx, "urge_3", "1", service.UrgeInterval).Return(false, nil).Once()

	err := f.svc.Urge(ctx, 3)
	assert.ErrorIs(t, err, service.ErrUrgeTooFrequent)
	assert.Equal(t, "can only urge once every 30 minutes", err.Error())
	assert.Empty(t, f.dispatcher.queued)
}

func TestBookingService_Urge_ReleasesFlagWhenEnqueueFails(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	f.dispatcher.err = errors.New("redis unavailable")

	f.bookings.On("FindByID", ctx, uint(3)).Return(pendingBooking(), nil).Once()
	f.cache.On("SetNX", ctx, "urge_3", "1", service.UrgeInterval).Return(true, nil).Once()
	f.cache.On("Get", ctx, service.AdminEmailKey).Return("admin@example.com", nil).Once()
	f.cache.On("Delete", ctx, "urge_3").Return(nil).Once()

	err := f.svc.Urge(ctx, 3)
	assert.ErrorIs(t, err, service.ErrSendFailed)
	f.cache.AssertExpectations(t)
	f.users.AssertNotCalled(t, "FindFirstAdmin", mock.Anything)
}

func TestBookingService_Urge_UnknownBooking(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	f.bookings.On("FindByID", ctx, uint(9)).Return(nil, repository.ErrBookingNotFound).Once()

	assert.ErrorIs(t, f.svc.Urge(ctx, 9), service.ErrBookingNotFound)
	f.cache.AssertNotCalled(t, "SetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_List_BuildsFilter(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 10, 31, 0, 0, 0, 0, time.Local)

	f.bookings.On("List", ctx, mock.MatchedBy(func(filter repository.BookingFilter) bool {
		return filter.Status == domain.BookingApproved &&
			filter.RoomName == "Jup" &&
			filter.Location == "301" &&
			filter.From != nil && filter.From.Equal(from) &&
			filter.To != nil && filter.To.Equal(to) &&
			filter.Page == 2 && filter.PageSize == 20
	})).Return([]domain.Booking{*pendingBooking()}, int64(21), nil).Once()

	vo, err := f.svc.List(ctx, dto.BookingListQuery{
		PageNo: 2, PageSize: 20, Status: "approved",
		MeetingRoomName: "Jup", MeetingRoomPosition: "301",
		BookingTimeRangeStart: from.UnixMilli(), BookingTimeRangeEnd: to.UnixMilli(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(21), vo.Total)
	assert.Len(t, vo.Records, 1)
}
