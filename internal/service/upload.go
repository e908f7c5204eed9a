package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// UploadService 把图片保存到本地上传目录。
type UploadService struct {
	dir     string
	maxSize int64
}

// NewUploadService 创建 UploadService 实例。
func NewUploadService(dir string, maxSize int64) *UploadService {
	if dir == "" {
		dir = "uploads"
	}
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	return &UploadService{dir: dir, maxSize: maxSize}
}

// MaxSize 单个文件的大小上限
func (s *UploadService) MaxSize() int64 {
	return s.maxSize
}

// SavePicture 校验扩展名和大小后写入 <basename>_<uuid>.<ext>，返回相对路径。
func (s *UploadService) SavePicture(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return "", ErrInvalidImage
	}
	if size > s.maxSize {
		return "", ErrFileTooLarge
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := fmt.Sprintf("%s_%s%s", base, uuid.NewString(), ext)
	logCtx := logrus.WithFields(logrus.Fields{"file": name, "size": size})

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		logCtx.WithError(err).Error("Failed to create upload directory")
		return "", ErrInternalServer
	}

	dst := filepath.Join(s.dir, name)
	f, err := os.Create(dst)
	if err != nil {
		logCtx.WithError(err).Error("Failed to create upload file")
		return "", ErrInternalServer
	}

	// 客户端声明的大小不可信，写入时再限制一次
	n, copyErr := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil || n > s.maxSize {
		_ = os.Remove(dst)
		if n > s.maxSize {
			return "", ErrFileTooLarge
		}
		logCtx.WithError(firstErr(copyErr, closeErr)).Error("Failed to write upload file")
		return "", ErrInternalServer
	}

	logCtx.Info("Picture uploaded")
	return path.Join(filepath.ToSlash(s.dir), name), nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
