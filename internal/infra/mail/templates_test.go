package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxKylin/meeting-room/internal/config"
)

func TestRenderCaptcha(t *testing.T) {
	html, err := RenderCaptcha(CaptchaData{Purpose: "注册", Code: "042917", Minutes: 5})
	require.NoError(t, err)
	assert.Contains(t, html, "042917")
	assert.Contains(t, html, "有效期 5 分钟")
}

func TestRenderUrge_EscapesInput(t *testing.T) {
	html, err := RenderUrge(UrgeData{BookingID: 3, Username: "<script>x</script>", RoomName: "木星"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "#3")
	assert.Contains(t, html, "木星")
}

func TestSMTPMailer_MissingConfig(t *testing.T) {
	m := NewSMTPMailer(config.EmailConfig{})
	err := m.Send(context.Background(), Message{To: "a@b.com", Subject: "s", HTML: "<p>x</p>"})
	assert.EqualError(t, err, "email config missing")
}

func TestSMTPMailer_CanceledContext(t *testing.T) {
	m := NewSMTPMailer(config.EmailConfig{Host: "localhost", Port: 25, User: "u", From: "u@example.com"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Send(ctx, Message{To: "a@b.com", Subject: "s", HTML: "<p>x</p>"})
	assert.ErrorIs(t, err, context.Canceled)
}
