package dto

import (
	"github.com/lxKylin/meeting-room/internal/domain"
)

// CreateBookingRequest 预定会议室，时间为毫秒时间戳
type CreateBookingRequest struct {
	MeetingRoomID uint   `json:"meetingRoomId" binding:"required"`
	StartTime     int64  `json:"startTime" binding:"required,gt=0"`
	EndTime       int64  `json:"endTime" binding:"required,gt=0"`
	Note          string `json:"note" binding:"max=100"`
}

func (r CreateBookingRequest) Validate() FieldErrors {
	c := newChecker(r)
	if !c.failed("startTime") && !c.failed("endTime") && r.StartTime >= r.EndTime {
		c.add("endTime", "start time must be before end time")
	}
	return c.errs
}

// BookingListQuery 预定列表查询参数，时间范围为毫秒时间戳
type BookingListQuery struct {
	PageNo                int    `form:"pageNo" binding:"gte=0"`
	PageSize              int    `form:"pageSize" binding:"gte=0"`
	Status                string `form:"status"`
	Username              string `form:"username"`
	MeetingRoomName       string `form:"meetingRoomName"`
	MeetingRoomPosition   string `form:"meetingRoomPosition"`
	BookingTimeRangeStart int64  `form:"bookingTimeRangeStart" binding:"gte=0"`
	BookingTimeRangeEnd   int64  `form:"bookingTimeRangeEnd" binding:"gte=0"`
}

func (q BookingListQuery) Validate() FieldErrors {
	c := newChecker(q)
	if q.Status != "" && !domain.BookingStatus(q.Status).Valid() {
		c.add("status", "unknown booking status")
	}
	if q.BookingTimeRangeStart > 0 && q.BookingTimeRangeEnd > 0 && q.BookingTimeRangeStart > q.BookingTimeRangeEnd {
		c.add("bookingTimeRangeEnd", "range start must not be after range end")
	}
	return c.errs
}

// BookingListVO 预定分页结果
type BookingListVO struct {
	Records []domain.Booking `json:"records"`
	Total   int64            `json:"total"`
}

// StatisticsQuery 统计窗口，[startTime, endTime] 闭区间
type StatisticsQuery struct {
	StartTime string `form:"startTime" binding:"required"`
	EndTime   string `form:"endTime" binding:"required"`
}

func (q StatisticsQuery) Validate() FieldErrors {
	c := newChecker(q)
	start, okStart := ParseQueryTime(q.StartTime)
	if !c.failed("startTime") && !okStart {
		c.add("startTime", "startTime has an invalid format")
	}
	end, okEnd := ParseQueryTime(q.EndTime)
	if !c.failed("endTime") && !okEnd {
		c.add("endTime", "endTime has an invalid format")
	}
	if okStart && okEnd && start.After(end) {
		c.add("endTime", "startTime must not be after endTime")
	}
	return c.errs
}
