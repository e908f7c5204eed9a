package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/service"
)

// UploadHandler 图片上传
type UploadHandler struct {
	uploadService *service.UploadService
}

// NewUploadHandler 创建 UploadHandler 实例
func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Picture 接收表单字段 file，返回保存后的相对路径
func (h *UploadHandler) Picture(c *gin.Context) {
	// 留出 multipart 头部的余量
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploadService.MaxSize()+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			HandleServiceError(c, service.ErrFileTooLarge)
			return
		}
		HandleServiceError(c, dto.FieldErrors{{Field: "file", Message: "file cannot be empty"}})
		return
	}
	f, err := fh.Open()
	if err != nil {
		logrus.WithError(err).Error("Failed to open uploaded file")
		HandleServiceError(c, err)
		return
	}
	defer f.Close()

	path, err := h.uploadService.SavePicture(c.Request.Context(), fh.Filename, fh.Size, f)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, path)
}
