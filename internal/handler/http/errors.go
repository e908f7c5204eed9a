package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/service"
)

// HandleServiceError 把 service 层错误转换为 HTTP 响应。
// 业务错误使用自带的状态码，其余错误统一返回 503。
func HandleServiceError(c *gin.Context, err error) {
	var fieldErrs dto.FieldErrors
	if errors.As(err, &fieldErrs) {
		env := dto.NewError(http.StatusBadRequest, fieldErrs.Error(), c.Request.URL.Path)
		env.Fields = fieldErrs.Fields()
		c.AbortWithStatusJSON(http.StatusBadRequest, env)
		return
	}
	if be, ok := service.AsBusinessError(err); ok {
		ErrorResponse(c, be.Code, be.Msg)
		return
	}

	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled internal server error")
	_ = c.Error(err)
	ErrorResponse(c, http.StatusServiceUnavailable, "Service Unavailable")
}
