package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"ecommerce-backend/internal/infrastructure/email"
	"ecommerce-backend/internal/shared"
)

// ============================================
// OTP Email Handler
// ============================================

type OtpEmailHandler struct {
	emailService email.EmailService
	otpTTL       time.Duration
}

func NewOtpEmailHandler(emailService email.EmailService, otpTTL time.Duration) *OtpEmailHandler {
	return &OtpEmailHandler{
		emailService: emailService,
		otpTTL:       otpTTL,
	}
}

func (h *OtpEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OtpEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal OtpEmail payload")
		// Sai format payload, retry cũng vô ích
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if !payload.Type.Valid() || payload.Email == "" {
		return fmt.Errorf("invalid otp email payload: %w", asynq.SkipRetry)
	}

	log.Info().
		Str("email", payload.Email).
		Str("type", string(payload.Type)).
		Msg("📧 Processing otp email")

	err := h.emailService.SendOtpEmail(ctx, email.OtpEmailData{
		Email:     payload.Email,
		Name:      payload.Name,
		Code:      payload.Code,
		Type:      payload.Type,
		ExpiresIn: h.otpTTL.String(),
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to send otp email")
		return fmt.Errorf("send otp email: %w", err)
	}

	log.Info().Str("email", payload.Email).Msg("✅ Otp email sent successfully")
	return nil
}
