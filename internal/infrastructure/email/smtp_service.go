package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/shared"
)

// OtpEmailData - dữ liệu render email OTP
type OtpEmailData struct {
	Email     string
	Name      string
	Code      string
	Type      shared.OtpType
	ExpiresIn string
}

type EmailService interface {
	SendOtpEmail(ctx context.Context, data OtpEmailData) error
}

// Sender tách khỏi gomail.Dialer để test không cần SMTP server
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpEmailService struct {
	sender Sender
	from   string
}

// NewSMTPEmailService dùng gomail dialer với config SMTP
func NewSMTPEmailService(cfg config.SMTPConfig) EmailService {
	return NewEmailService(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From)
}

func NewEmailService(sender Sender, from string) EmailService {
	return &smtpEmailService{sender: sender, from: from}
}

func (s *smtpEmailService) SendOtpEmail(ctx context.Context, data OtpEmailData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := renderOtpEmail(data)
	if err != nil {
		return fmt.Errorf("render otp email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", data.Email)
	m.SetHeader("Subject", string(data.Type))
	m.SetBody("text/html", body)

	if err := s.sender.DialAndSend(m); err != nil {
		log.Error().Err(err).Str("to", data.Email).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

var otpTemplate = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background:#f4f4f4; padding:24px;">
  <div style="max-width:480px; margin:auto; background:#fff; border-radius:8px; padding:24px;">
    <h2 style="color:#333;">{{.Type}}</h2>
    <p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
    <p>Use the following code to continue:</p>
    <p style="font-size:28px; letter-spacing:6px; font-weight:bold; color:#1a73e8;">{{.Code}}</p>
    <p>This code expires in {{.ExpiresIn}}.</p>
    <p style="color:#888; font-size:12px;">If you did not request this, you can ignore this email.</p>
  </div>
</body>
</html>`))

func renderOtpEmail(data OtpEmailData) (string, error) {
	buf := new(bytes.Buffer)
	if err := otpTemplate.Execute(buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
