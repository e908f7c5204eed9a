package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/service"
)

// RoomHandler 会议室管理
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler 创建 RoomHandler 实例
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// Create 新建会议室
func (h *RoomHandler) Create(c *gin.Context) {
	var req dto.CreateMeetingRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := h.roomService.Create(c.Request.Context(), req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, room)
}

// List 分页查询会议室
func (h *RoomHandler) List(c *gin.Context) {
	var q dto.MeetingRoomListQuery
	if !bindQuery(c, &q) {
		return
	}
	vo, err := h.roomService.List(c.Request.Context(), q)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, vo)
}

// Get 查看会议室详情
func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	room, err := h.roomService.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, room)
}

// Update 修改会议室
func (h *RoomHandler) Update(c *gin.Context) {
	var req dto.UpdateMeetingRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := h.roomService.Update(c.Request.Context(), req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, room)
}

// Delete 删除会议室
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.roomService.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "success")
}
