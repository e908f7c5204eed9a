package domain

import "time"

// BookingStatus 预定审批状态
type BookingStatus string

const (
	BookingApplying BookingStatus = "applying"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
	BookingUnbound  BookingStatus = "unbound"
)

// IsActive 申请中和已通过的预定会占用时段。
func (s BookingStatus) IsActive() bool {
	return s == BookingApplying || s == BookingApproved
}

// Valid 判断是否为已知状态。
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingApplying, BookingApproved, BookingRejected, BookingUnbound:
		return true
	}
	return false
}

// CanTransition 允许的流转：申请中可通过或驳回，申请中和已通过可解除。
// 失效的预定不能重新生效，冲突检测因此只需在创建时进行。
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	switch to {
	case BookingApproved, BookingRejected:
		return s == BookingApplying
	case BookingUnbound:
		return s.IsActive()
	}
	return false
}

// ActiveBookingStatuses 参与冲突检测的状态
var ActiveBookingStatuses = []BookingStatus{BookingApplying, BookingApproved}

// Booking 表示某个用户对某间会议室在 [StartTime, EndTime) 的一次预定。
type Booking struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	StartTime time.Time     `gorm:"not null;index:idx_room_time,priority:2" json:"startTime"`
	EndTime   time.Time     `gorm:"not null;index:idx_room_time,priority:3" json:"endTime"`
	Status    BookingStatus `gorm:"type:varchar(20);not null;default:'applying';index" json:"status"`
	Note      string        `gorm:"type:varchar(100);default:''" json:"note"`
	UserID    uint          `gorm:"not null;index" json:"-"`
	RoomID    uint          `gorm:"not null;index:idx_room_time,priority:1" json:"-"`
	User      *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Room      *MeetingRoom  `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"room,omitempty"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"createTime"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updateTime"`
}

// TableName 固定表名
func (Booking) TableName() string {
	return "booking"
}

// UserBookingCount 用户预定次数统计行
type UserBookingCount struct {
	UserID       uint   `json:"userId"`
	Username     string `json:"username"`
	BookingCount int64  `json:"bookingCount"`
}

// RoomUsageCount 会议室使用次数统计行
type RoomUsageCount struct {
	MeetingRoomID   uint   `json:"meetingRoomId"`
	MeetingRoomName string `json:"meetingRoomName"`
	UsedCount       int64  `json:"usedCount"`
}
