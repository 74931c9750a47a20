package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"ecommerce-backend/internal/domains/auth"
)

// ============================================
// Sweep Expired OTPs Handler (cron)
// ============================================

type SweepOtpsHandler struct {
	service auth.Service
	now     func() time.Time
}

func NewSweepOtpsHandler(service auth.Service) *SweepOtpsHandler {
	return &SweepOtpsHandler{service: service, now: time.Now}
}

func (h *SweepOtpsHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	start := h.now()

	deleted, err := h.service.SweepExpiredOtps(ctx, start)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sweep expired otps")
		return fmt.Errorf("sweep expired otps: %w", err)
	}

	log.Info().
		Int64("deleted", deleted).
		Dur("duration", time.Since(start)).
		Msg("🧹 Expired otps sweep completed")
	return nil
}
