package queue

import (
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/shared"
)

type recordingRegistrar struct {
	specs map[string]string
}

func (r *recordingRegistrar) Register(spec string, task *asynq.Task, _ ...asynq.Option) (string, error) {
	r.specs[task.Type()] = spec
	return "entry-" + task.Type(), nil
}

func TestRegisterSweepJobs(t *testing.T) {
	reg := &recordingRegistrar{specs: map[string]string{}}
	s := &Scheduler{registrar: reg, jobConfig: config.JobConfig{
		RevokedTokenSweepCron: "0 * * * *",
		ExpiredOtpSweepCron:   "*/10 * * * *",
	}}

	require.NoError(t, s.RegisterSweepJobs())
	assert.Equal(t, "0 * * * *", reg.specs[shared.TypeSweepRevokedTokens])
	assert.Equal(t, "*/10 * * * *", reg.specs[shared.TypeSweepExpiredOtps])
}

func TestRegisterSweepJobs_InvalidCron(t *testing.T) {
	reg := &recordingRegistrar{specs: map[string]string{}}
	s := &Scheduler{registrar: reg, jobConfig: config.JobConfig{
		RevokedTokenSweepCron: "every hour",
		ExpiredOtpSweepCron:   "*/10 * * * *",
	}}

	err := s.RegisterSweepJobs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron spec")
	assert.Empty(t, reg.specs)
}
