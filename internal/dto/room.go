package dto

import "github.com/lxKylin/meeting-room/internal/domain"

// CreateMeetingRoomRequest 新建会议室
type CreateMeetingRoomRequest struct {
	Name        string `json:"name" binding:"required,max=10"`
	Capacity    int    `json:"capacity" binding:"gt=0"`
	Location    string `json:"location" binding:"required,max=50"`
	Equipment   string `json:"equipment" binding:"max=50"`
	Description string `json:"description" binding:"max=100"`
}

func (r CreateMeetingRoomRequest) Validate() FieldErrors {
	return ValidateTags(r)
}

// UpdateMeetingRoomRequest 修改会议室，零值字段保持不变
type UpdateMeetingRoomRequest struct {
	ID          uint    `json:"id" binding:"required"`
	Name        string  `json:"name" binding:"max=10"`
	Capacity    int     `json:"capacity" binding:"gte=0"`
	Location    string  `json:"location" binding:"max=50"`
	Equipment   *string `json:"equipment" binding:"omitempty,max=50"`
	Description *string `json:"description" binding:"omitempty,max=100"`
}

func (r UpdateMeetingRoomRequest) Validate() FieldErrors {
	return ValidateTags(r)
}

// MeetingRoomListQuery 会议室列表查询参数
type MeetingRoomListQuery struct {
	PageNo   int    `form:"pageNo" binding:"gte=0"`
	PageSize int    `form:"pageSize" binding:"gte=0"`
	Name     string `form:"name"`
	Location string `form:"location"`
	IsBooked *bool  `form:"isBooked"`
}

func (q MeetingRoomListQuery) Validate() FieldErrors {
	return ValidateTags(q)
}

// MeetingRoomListVO 会议室分页结果
type MeetingRoomListVO struct {
	Records []domain.MeetingRoom `json:"records"`
	Total   int64                `json:"total"`
}
