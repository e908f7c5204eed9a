package service

import (
	"errors"
	"net/http"
)

// BusinessError 表示业务规则错误，Code 直接作为 HTTP 状态码返回给客户端。
type BusinessError struct {
	Code int
	Msg  string
	base *BusinessError
}

// NewBusinessError 创建业务错误
func NewBusinessError(code int, msg string) *BusinessError {
	return &BusinessError{Code: code, Msg: msg}
}

func (e *BusinessError) Error() string {
	return e.Msg
}

// Unwrap 让带前缀的错误仍然匹配原始的哨兵错误
func (e *BusinessError) Unwrap() error {
	if e.base == nil {
		return nil
	}
	return e.base
}

// WithPrefix 在消息前加上资源名，例如 "木星 this time slot is already booked"
func (e *BusinessError) WithPrefix(prefix string) *BusinessError {
	return &BusinessError{Code: e.Code, Msg: prefix + " " + e.Msg, base: e}
}

// AsBusinessError 提取错误链中的 BusinessError
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

var (
	ErrCaptchaExpired       = NewBusinessError(http.StatusBadRequest, "verification code expired")
	ErrCaptchaIncorrect     = NewBusinessError(http.StatusBadRequest, "verification code incorrect")
	ErrSendFailed           = NewBusinessError(http.StatusInternalServerError, "send failed")
	ErrUserExists           = NewBusinessError(http.StatusBadRequest, "user already exists")
	ErrUserNotFound         = NewBusinessError(http.StatusBadRequest, "user does not exist")
	ErrAuthenticationFailed = NewBusinessError(http.StatusBadRequest, "account or password incorrect")
	ErrAccountFrozen        = NewBusinessError(http.StatusForbidden, "account is frozen")
	ErrTokenInvalid         = NewBusinessError(http.StatusUnauthorized, "token invalid, please log in again")
	ErrEmailMismatch        = NewBusinessError(http.StatusBadRequest, "email does not match the account")
	ErrRoomExists           = NewBusinessError(http.StatusBadRequest, "meeting room already exists")
	ErrRoomNotFound         = NewBusinessError(http.StatusBadRequest, "room does not exist")
	ErrSlotBooked           = NewBusinessError(http.StatusBadRequest, "this time slot is already booked")
	ErrBookingNotFound      = NewBusinessError(http.StatusBadRequest, "booking does not exist")
	ErrBookingStatus        = NewBusinessError(http.StatusBadRequest, "booking status does not allow this operation")
	ErrUrgeTooFrequent      = NewBusinessError(http.StatusBadRequest, "can only urge once every 30 minutes")
	ErrAdminNotFound        = NewBusinessError(http.StatusBadRequest, "no administrator to notify")
	ErrInvalidTimeRange     = NewBusinessError(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidImage         = NewBusinessError(http.StatusBadRequest, "only image files can be uploaded")
	ErrFileTooLarge         = NewBusinessError(http.StatusBadRequest, "file exceeds the size limit")
)

// ErrInternalServer 表示非业务的意外错误，对外统一返回 503
var ErrInternalServer = errors.New("internal server error")
