package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// CaptchaData 验证码邮件的模板参数
type CaptchaData struct {
	Purpose string
	Code    string
	Minutes int
}

// UrgeData 催办邮件的模板参数
type UrgeData struct {
	BookingID uint
	Username  string
	RoomName  string
	StartTime string
	EndTime   string
}

// RenderCaptcha 渲染验证码邮件正文
func RenderCaptcha(data CaptchaData) (string, error) {
	return render("captcha.html", data)
}

// RenderUrge 渲染催办邮件正文
func RenderUrge(data UrgeData) (string, error) {
	return render("urge.html", data)
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
