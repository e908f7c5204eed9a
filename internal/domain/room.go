package domain

import "time"

// MeetingRoom 表示一间可预定的会议室。
type MeetingRoom struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	Location    string    `gorm:"type:varchar(50);not null" json:"location"`
	Equipment   string    `gorm:"type:varchar(50);default:''" json:"equipment"`
	Description string    `gorm:"type:varchar(100);default:''" json:"description"`
	IsBooked    bool      `gorm:"not null;default:false" json:"isBooked"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updateTime"`
}

// TableName 固定表名
func (MeetingRoom) TableName() string {
	return "meeting_room"
}
