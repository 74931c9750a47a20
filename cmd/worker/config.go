package main

import (
	"time"

	"github.com/rs/zerolog/log"

	"ecommerce-backend/internal/config"
)

// workerConfig - phần config worker cần, lấy từ config chung của container
type workerConfig struct {
	Concurrency int
	HealthAddr  string
	OtpTTL      time.Duration
	SMTP        config.SMTPConfig
	Jobs        config.JobConfig
}

func loadConfig(cfg *config.Config) *workerConfig {
	wc := &workerConfig{
		Concurrency: cfg.Jobs.WorkerConcurrency,
		HealthAddr:  cfg.Jobs.WorkerHealthAddr,
		OtpTTL:      cfg.Otp.TTL,
		SMTP:        cfg.SMTP,
		Jobs:        cfg.Jobs,
	}

	log.Info().
		Str("redis", cfg.Redis.Host).
		Str("smtp", cfg.SMTP.Host).
		Int("concurrency", wc.Concurrency).
		Msg("[Config] Worker config loaded")

	return wc
}
