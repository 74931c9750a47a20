package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"

	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/shared"
	"ecommerce-backend/pkg/logger"
)

// TaskRegistrar - phần của asynq.Scheduler mà Scheduler dùng
type TaskRegistrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

type Scheduler struct {
	scheduler *asynq.Scheduler
	registrar TaskRegistrar
	jobConfig config.JobConfig
}

func NewScheduler(opt asynq.RedisConnOpt, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		opt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		registrar: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterSweepJobs đăng ký các job dọn dẹp định kỳ
func (s *Scheduler) RegisterSweepJobs() error {
	if err := s.register("SweepRevokedTokens", s.jobConfig.RevokedTokenSweepCron, shared.TypeSweepRevokedTokens); err != nil {
		return err
	}

	if err := s.register("SweepExpiredOtps", s.jobConfig.ExpiredOtpSweepCron, shared.TypeSweepExpiredOtps); err != nil {
		return err
	}

	return nil
}

// register validate cron spec bằng robfig/cron trước khi giao cho asynq
func (s *Scheduler) register(name, spec, taskType string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron spec %q for %s: %w", spec, name, err)
	}

	payload, err := json.Marshal(shared.SweepPayload{})
	if err != nil {
		return err
	}

	_, err = s.registrar.Register(
		spec,
		asynq.NewTask(taskType, payload),
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register "+name+" job", err)
		return err
	}

	logger.Info("✓ Registered "+name, map[string]interface{}{"cron": spec})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
