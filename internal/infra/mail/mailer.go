package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/lxKylin/meeting-room/internal/config"
)

// Message 一封待发送的 HTML 邮件
type Message struct {
	To      string
	Subject string
	HTML    string
}

// SMTPMailer 通过 SMTP 发送邮件
type SMTPMailer struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

// NewSMTPMailer 创建 SMTPMailer 实例
func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// Send 同步发送一封邮件
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m.cfg.Host == "" || m.cfg.User == "" || m.cfg.From == "" {
		return fmt.Errorf("email config missing")
	}
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("empty recipient")
	}
	// gomail 不支持 context，至少在拨号前检查是否已取消
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.cfg.From)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}

	logrus.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject}).Info("Email sent")
	return nil
}
