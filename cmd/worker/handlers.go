package main

import (
	"github.com/hibiken/asynq"

	authJob "ecommerce-backend/internal/domains/auth/job"
	tokenJob "ecommerce-backend/internal/domains/token/job"
	"ecommerce-backend/internal/infrastructure/email"
	emailjob "ecommerce-backend/internal/infrastructure/email/job"
	"ecommerce-backend/internal/shared"
	"ecommerce-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Email handlers
	otpEmail *emailjob.OtpEmailHandler

	// Maintenance handlers
	sweepRevoked *tokenJob.SweepRevokedHandler
	sweepOtps    *authJob.SweepOtpsHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container, cfg *workerConfig) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(cfg.SMTP)

	return &HandlerRegistry{
		otpEmail:     emailjob.NewOtpEmailHandler(emailSvc, cfg.OtpTTL),
		sweepRevoked: tokenJob.NewSweepRevokedHandler(c.TokenService),
		sweepOtps:    authJob.NewSweepOtpsHandler(c.AuthService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Email tasks
	mux.HandleFunc(shared.TypeSendOtpEmail, h.otpEmail.ProcessTask)

	// Maintenance tasks
	mux.HandleFunc(shared.TypeSweepRevokedTokens, h.sweepRevoked.ProcessTask)
	mux.HandleFunc(shared.TypeSweepExpiredOtps, h.sweepOtps.ProcessTask)
}
