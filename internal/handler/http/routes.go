package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lxKylin/meeting-room/internal/domain"
	"github.com/lxKylin/meeting-room/internal/middleware"
)

// Route 一条路由及其鉴权要求。鉴权链由 Register 按表构建。
type Route struct {
	Method       string
	Path         string
	RequireLogin bool
	Permission   string // 为空表示只需登录
	Handler      gin.HandlerFunc
}

// Handlers 汇总所有 HTTP handler
type Handlers struct {
	User       *UserHandler
	Captcha    *CaptchaHandler
	Room       *RoomHandler
	Booking    *BookingHandler
	Statistics *StatisticsHandler
	Upload     *UploadHandler
}

// Routes 返回 /api 下的全部路由
func Routes(h Handlers) []Route {
	return []Route{
		// 用户
		{Method: http.MethodPost, Path: "/user/register", Handler: h.User.Register},
		{Method: http.MethodPost, Path: "/user/login", Handler: h.User.Login},
		{Method: http.MethodPost, Path: "/user/admin/login", Handler: h.User.AdminLogin},
		{Method: http.MethodGet, Path: "/user/refresh", Handler: h.User.Refresh},
		{Method: http.MethodGet, Path: "/user/admin/refresh", Handler: h.User.AdminRefresh},
		{Method: http.MethodGet, Path: "/user/info", RequireLogin: true, Handler: h.User.Info},
		{Method: http.MethodPost, Path: "/user/update_password", Handler: h.User.UpdatePassword},
		{Method: http.MethodPost, Path: "/user/update", RequireLogin: true, Handler: h.User.Update},
		{Method: http.MethodGet, Path: "/user/freeze", RequireLogin: true, Permission: domain.PermUserManage, Handler: h.User.Freeze},
		{Method: http.MethodGet, Path: "/user/unfreeze", RequireLogin: true, Permission: domain.PermUserManage, Handler: h.User.Unfreeze},
		{Method: http.MethodGet, Path: "/user/list", RequireLogin: true, Permission: domain.PermUserManage, Handler: h.User.List},

		// 验证码
		{Method: http.MethodGet, Path: "/captcha/register", Handler: h.Captcha.Register},
		{Method: http.MethodGet, Path: "/captcha/update_password", Handler: h.Captcha.UpdatePassword},
		{Method: http.MethodGet, Path: "/captcha/update_user_info", RequireLogin: true, Handler: h.Captcha.UpdateUserInfo},

		// 会议室
		{Method: http.MethodPost, Path: "/meeting-room/create", RequireLogin: true, Permission: domain.PermRoomManage, Handler: h.Room.Create},
		{Method: http.MethodGet, Path: "/meeting-room/list", RequireLogin: true, Handler: h.Room.List},
		{Method: http.MethodGet, Path: "/meeting-room/:id", RequireLogin: true, Handler: h.Room.Get},
		{Method: http.MethodPatch, Path: "/meeting-room/update", RequireLogin: true, Permission: domain.PermRoomManage, Handler: h.Room.Update},
		{Method: http.MethodDelete, Path: "/meeting-room/:id", RequireLogin: true, Permission: domain.PermRoomManage, Handler: h.Room.Delete},

		// 预定
		{Method: http.MethodPost, Path: "/booking/add", RequireLogin: true, Handler: h.Booking.Add},
		{Method: http.MethodGet, Path: "/booking/list", RequireLogin: true, Handler: h.Booking.List},
		{Method: http.MethodGet, Path: "/booking/apply/:id", RequireLogin: true, Permission: domain.PermBookingApprove, Handler: h.Booking.Apply},
		{Method: http.MethodGet, Path: "/booking/reject/:id", RequireLogin: true, Permission: domain.PermBookingApprove, Handler: h.Booking.Reject},
		{Method: http.MethodGet, Path: "/booking/unbind/:id", RequireLogin: true, Permission: domain.PermBookingApprove, Handler: h.Booking.Unbind},
		{Method: http.MethodGet, Path: "/booking/urge/:id", RequireLogin: true, Handler: h.Booking.Urge},
		{Method: http.MethodDelete, Path: "/booking/:id", RequireLogin: true, Permission: domain.PermBookingApprove, Handler: h.Booking.Delete},

		// 统计
		{Method: http.MethodGet, Path: "/statistics/userBookingCount", RequireLogin: true, Permission: domain.PermStatisticsView, Handler: h.Statistics.UserBookingCount},
		{Method: http.MethodGet, Path: "/statistics/meetingRoomUsedCount", RequireLogin: true, Permission: domain.PermStatisticsView, Handler: h.Statistics.MeetingRoomUsedCount},

		// 上传
		{Method: http.MethodPost, Path: "/upload/picture", RequireLogin: true, Handler: h.Upload.Picture},
	}
}

// Register 把路由表挂到 group 上。需要权限的路由隐含需要登录。
func Register(group gin.IRoutes, routes []Route, parser middleware.TokenParser, rec middleware.RejectionRecorder) {
	login := middleware.LoginRequired(parser, rec)
	for _, r := range routes {
		chain := make([]gin.HandlerFunc, 0, 3)
		if r.RequireLogin || r.Permission != "" {
			chain = append(chain, login)
		}
		if r.Permission != "" {
			chain = append(chain, middleware.PermissionRequired(r.Permission, rec))
		}
		chain = append(chain, r.Handler)
		group.Handle(r.Method, r.Path, chain...)
	}
}
