package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/service"
)

// BookingHandler 预定和审批
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler 创建 BookingHandler 实例
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Add 当前用户预定会议室
func (h *BookingHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := h.bookingService.Create(c.Request.Context(), userID, req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, booking)
}

// List 分页查询预定
func (h *BookingHandler) List(c *gin.Context) {
	var q dto.BookingListQuery
	if !bindQuery(c, &q) {
		return
	}
	vo, err := h.bookingService.List(c.Request.Context(), q)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, vo)
}

// Apply 审批通过
func (h *BookingHandler) Apply(c *gin.Context) {
	h.byID(c, h.bookingService.Approve)
}

// Reject 驳回
func (h *BookingHandler) Reject(c *gin.Context) {
	h.byID(c, h.bookingService.Reject)
}

// Unbind 解除预定
func (h *BookingHandler) Unbind(c *gin.Context) {
	h.byID(c, h.bookingService.Unbind)
}

// Urge 催办
func (h *BookingHandler) Urge(c *gin.Context) {
	h.byID(c, h.bookingService.Urge)
}

// Delete 删除预定
func (h *BookingHandler) Delete(c *gin.Context) {
	h.byID(c, h.bookingService.Delete)
}

func (h *BookingHandler) byID(c *gin.Context, op func(ctx context.Context, id uint) error) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := op(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "success")
}
