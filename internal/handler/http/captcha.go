package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/service"
)

// CaptchaHandler 发送各类邮箱验证码
type CaptchaHandler struct {
	captchaService *service.CaptchaService
	userService    *service.UserService
}

// NewCaptchaHandler 创建 CaptchaHandler 实例
func NewCaptchaHandler(captchaService *service.CaptchaService, userService *service.UserService) *CaptchaHandler {
	return &CaptchaHandler{captchaService: captchaService, userService: userService}
}

// captchaAddress 验证码接收地址
type captchaAddress struct {
	Address string `form:"address" binding:"required,email"`
}

func (q captchaAddress) Validate() dto.FieldErrors {
	return dto.ValidateTags(q)
}

// Register 注册验证码
func (h *CaptchaHandler) Register(c *gin.Context) {
	h.sendTo(c, service.PurposeRegister)
}

// UpdatePassword 修改密码验证码
func (h *CaptchaHandler) UpdatePassword(c *gin.Context) {
	h.sendTo(c, service.PurposeUpdatePassword)
}

func (h *CaptchaHandler) sendTo(c *gin.Context, purpose service.CaptchaPurpose) {
	var q captchaAddress
	if !bindQuery(c, &q) {
		return
	}
	if err := h.captchaService.Send(c.Request.Context(), purpose, q.Address); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "send success")
}

// UpdateUserInfo 修改个人信息验证码，发往当前账号的邮箱
func (h *CaptchaHandler) UpdateUserInfo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.userService.SendProfileCaptcha(c.Request.Context(), userID); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "send success")
}
