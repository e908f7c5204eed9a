package http

import (
	"github.com/gin-gonic/gin"

	"github.com/lxKylin/meeting-room/internal/dto"
)

// ErrorResponse 输出统一的失败响应
func ErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, dto.NewError(code, message, c.Request.URL.Path))
}

// SuccessResponse 输出统一的成功响应
func SuccessResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, dto.NewSuccess(code, data, c.Request.URL.Path))
}
