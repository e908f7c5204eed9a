package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/service"
)

// UserHandler 用户注册、登录和账号管理
type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(authService *service.AuthService, userService *service.UserService) *UserHandler {
	return &UserHandler{authService: authService, userService: userService}
}

// Register 处理用户注册请求
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	logrus.WithField("user_id", user.ID).Info("Handler.Register: User registered successfully")
	SuccessResponse(c, http.StatusCreated, "success")
}

// Login 普通用户登录
func (h *UserHandler) Login(c *gin.Context) {
	h.login(c, false)
}

// AdminLogin 管理员登录
func (h *UserHandler) AdminLogin(c *gin.Context) {
	h.login(c, true)
}

func (h *UserHandler) login(c *gin.Context, admin bool) {
	var req dto.LoginUserRequest
	if !bindJSON(c, &req) {
		return
	}
	vo, err := h.authService.Login(c.Request.Context(), req, admin)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, vo)
}

// Refresh 用 refresh token 换取新的 token
func (h *UserHandler) Refresh(c *gin.Context) {
	h.refresh(c, false)
}

// AdminRefresh 管理员刷新 token
func (h *UserHandler) AdminRefresh(c *gin.Context) {
	h.refresh(c, true)
}

func (h *UserHandler) refresh(c *gin.Context, admin bool) {
	token := c.Query("refreshToken")
	if token == "" {
		HandleServiceError(c, dto.FieldErrors{{Field: "refreshToken", Message: "refreshToken cannot be empty"}})
		return
	}
	pair, err := h.authService.Refresh(c.Request.Context(), token, admin)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, pair)
}

// Info 当前登录用户的信息
func (h *UserHandler) Info(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	vo, err := h.userService.Info(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, vo)
}

// UpdatePassword 通过邮箱验证码重置密码
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.userService.UpdatePassword(c.Request.Context(), req); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "success")
}

// Update 修改当前用户的个人信息
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.userService.UpdateProfile(c.Request.Context(), userID, req); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "success")
}

// Freeze 冻结用户
func (h *UserHandler) Freeze(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	if err := h.userService.Freeze(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "success")
}

// Unfreeze 解冻用户
func (h *UserHandler) Unfreeze(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	if err := h.userService.Unfreeze(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "success")
}

// List 分页查询用户
func (h *UserHandler) List(c *gin.Context) {
	var q dto.UserListQuery
	if !bindQuery(c, &q) {
		return
	}
	vo, err := h.userService.List(c.Request.Context(), q)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, vo)
}
