package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/service"
)

// StatisticsHandler 使用统计
type StatisticsHandler struct {
	statsService *service.StatisticsService
}

// NewStatisticsHandler 创建 StatisticsHandler 实例
func NewStatisticsHandler(statsService *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statsService: statsService}
}

// UserBookingCount 用户预定次数
func (h *StatisticsHandler) UserBookingCount(c *gin.Context) {
	var q dto.StatisticsQuery
	if !bindQuery(c, &q) {
		return
	}
	start, _ := dto.ParseQueryTime(q.StartTime)
	end, _ := dto.ParseQueryTime(q.EndTime)
	rows, err := h.statsService.UserBookingCount(c.Request.Context(), start, end)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, rows)
}

// MeetingRoomUsedCount 会议室使用次数
func (h *StatisticsHandler) MeetingRoomUsedCount(c *gin.Context) {
	var q dto.StatisticsQuery
	if !bindQuery(c, &q) {
		return
	}
	start, _ := dto.ParseQueryTime(q.StartTime)
	end, _ := dto.ParseQueryTime(q.EndTime)
	rows, err := h.statsService.MeetingRoomUsedCount(c.Request.Context(), start, end)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, rows)
}
