package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/middleware"
)

// bindJSON 解析请求体并执行显式校验，失败时已写出响应
func bindJSON(c *gin.Context, req dto.Validator) bool {
	if err := c.ShouldBindJSON(req); err != nil && !isValidationError(err) {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Warn("Invalid request body")
		ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return validate(c, req)
}

// bindQuery 解析查询参数并执行显式校验
func bindQuery(c *gin.Context, req dto.Validator) bool {
	if err := c.ShouldBindQuery(req); err != nil && !isValidationError(err) {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Warn("Invalid query parameters")
		ErrorResponse(c, http.StatusBadRequest, "invalid query parameters")
		return false
	}
	return validate(c, req)
}

// isValidationError binding tag 校验失败，交给 Validate 生成字段错误
func isValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

func validate(c *gin.Context, req dto.Validator) bool {
	if errs := req.Validate(); len(errs) > 0 {
		HandleServiceError(c, errs)
		return false
	}
	return true
}

// parseID 解析正整数 ID，失败时已写出响应
func parseID(c *gin.Context, raw, field string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		HandleServiceError(c, dto.FieldErrors{{Field: field, Message: field + " must be a positive integer"}})
		return 0, false
	}
	return uint(id), true
}

func pathID(c *gin.Context) (uint, bool) {
	return parseID(c, c.Param("id"), "id")
}

func queryID(c *gin.Context) (uint, bool) {
	return parseID(c, c.Query("id"), "id")
}

// currentUserID 读取鉴权中间件写入的用户 ID
func currentUserID(c *gin.Context) (uint, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, middleware.MsgNotAuthenticated)
	}
	return id, ok
}
