package main

import (
	"github.com/rs/zerolog/log"

	"ecommerce-backend/internal/infrastructure/queue"
	"ecommerce-backend/pkg/container"
)

// asynqScheduler wraps queue.Scheduler with additional functionality
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler đăng ký cron sweep jobs và start scheduler
func setupScheduler(c *container.Container, cfg *workerConfig) (*asynqScheduler, error) {
	scheduler := queue.NewScheduler(c.RedisConnOpt(), cfg.Jobs)

	if err := scheduler.RegisterSweepJobs(); err != nil {
		return nil, err
	}

	go func() {
		log.Info().Msg("[Scheduler] Starting...")
		if err := scheduler.Start(); err != nil {
			log.Error().Err(err).Msg("[Scheduler] Failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}, nil
}

// Shutdown gracefully shuts down the scheduler
func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Info().Msg("[Scheduler] ✓ Stopped")
}
