package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lxKylin/meeting-room/internal/infra/mail"
	"github.com/lxKylin/meeting-room/internal/repository"
)

// CaptchaPurpose 验证码用途，同时作为缓存 key 的前缀
type CaptchaPurpose string

const (
	PurposeRegister       CaptchaPurpose = "register_captcha"
	PurposeUpdatePassword CaptchaPurpose = "update_password_captcha"
	PurposeUpdateUser     CaptchaPurpose = "update_user_captcha"
)

// CaptchaTTL 验证码有效期
const CaptchaTTL = 5 * time.Minute

var captchaSubjects = map[CaptchaPurpose]string{
	PurposeRegister:       "注册验证码",
	PurposeUpdatePassword: "修改密码验证码",
	PurposeUpdateUser:     "修改用户信息验证码",
}

// Mailer 同步发送邮件
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// CaptchaService 负责验证码的生成、发送和校验。
type CaptchaService struct {
	cache    repository.CacheRepository
	mailer   Mailer
	metrics  MetricsRecorder
	generate func() (string, error)
}

// NewCaptchaService 创建 CaptchaService 实例。
func NewCaptchaService(cache repository.CacheRepository, mailer Mailer, metrics MetricsRecorder) *CaptchaService {
	if cache == nil || mailer == nil {
		panic("CacheRepository and Mailer cannot be nil for CaptchaService")
	}
	return &CaptchaService{
		cache:    cache,
		mailer:   mailer,
		metrics:  orNoop(metrics),
		generate: randomCode,
	}
}

func captchaKey(purpose CaptchaPurpose, email string) string {
	return string(purpose) + "_" + email
}

// Send 生成验证码，写入缓存后通过邮件发送。
func (s *CaptchaService) Send(ctx context.Context, purpose CaptchaPurpose, email string) error {
	logCtx := logrus.WithFields(logrus.Fields{"purpose": purpose, "email": email})

	code, err := s.generate()
	if err != nil {
		logCtx.WithError(err).Error("Failed to generate captcha")
		return ErrInternalServer
	}

	key := captchaKey(purpose, email)
	if err := s.cache.Set(ctx, key, code, CaptchaTTL); err != nil {
		logCtx.WithError(err).Error("Failed to store captcha")
		return ErrInternalServer
	}

	html, err := mail.RenderCaptcha(mail.CaptchaData{
		Purpose: captchaSubjects[purpose],
		Code:    code,
		Minutes: int(CaptchaTTL / time.Minute),
	})
	if err != nil {
		logCtx.WithError(err).Error("Failed to render captcha email")
		return ErrInternalServer
	}

	if err := s.mailer.Send(ctx, mail.Message{To: email, Subject: captchaSubjects[purpose], HTML: html}); err != nil {
		logCtx.WithError(err).Error("Failed to send captcha email")
		// 发送失败的验证码用户收不到，直接作废
		if delErr := s.cache.Delete(ctx, key); delErr != nil {
			logCtx.WithError(delErr).Warn("Failed to discard unsent captcha")
		}
		return ErrSendFailed
	}

	s.metrics.RecordCaptcha(string(purpose))
	logCtx.Info("Captcha sent")
	return nil
}

// Verify 校验验证码，成功后立即作废。
func (s *CaptchaService) Verify(ctx context.Context, purpose CaptchaPurpose, email, code string) error {
	logCtx := logrus.WithFields(logrus.Fields{"purpose": purpose, "email": email})
	key := captchaKey(purpose, email)

	stored, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrCacheMiss) {
			return ErrCaptchaExpired
		}
		logCtx.WithError(err).Error("Failed to read captcha")
		return ErrInternalServer
	}
	if stored != code {
		return ErrCaptchaIncorrect
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		logCtx.WithError(err).Warn("Failed to consume captcha")
	}
	return nil
}

// randomCode 生成 6 位数字验证码
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
