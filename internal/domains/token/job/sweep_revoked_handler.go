package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"ecommerce-backend/internal/domains/token"
)

// ============================================
// Sweep Revoked Tokens Handler (cron)
// ============================================

type SweepRevokedHandler struct {
	service token.Service
	now     func() time.Time
}

func NewSweepRevokedHandler(service token.Service) *SweepRevokedHandler {
	return &SweepRevokedHandler{service: service, now: time.Now}
}

func (h *SweepRevokedHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	start := h.now()

	deleted, err := h.service.SweepExpired(ctx, start)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sweep revoked tokens")
		return fmt.Errorf("sweep revoked tokens: %w", err)
	}

	log.Info().
		Int64("deleted", deleted).
		Dur("duration", time.Since(start)).
		Msg("🧹 Revoked tokens sweep completed")
	return nil
}
