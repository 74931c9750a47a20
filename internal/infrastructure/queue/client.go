package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"ecommerce-backend/internal/shared"
)

// Enqueuer - những gì service cần từ queue, tách interface để test
type Enqueuer interface {
	EnqueueOtpEmail(ctx context.Context, payload shared.OtpEmailPayload) error
}

// Client wrap asynq.Client
type Client struct {
	client *asynq.Client
}

var _ Enqueuer = (*Client)(nil)

func NewClient(opt asynq.RedisConnOpt) *Client {
	return &Client{client: asynq.NewClient(opt)}
}

// EnqueueOtpEmail đẩy task gửi OTP vào queue email
// OTP hết hạn sau vài phút nên task cũng có deadline tương ứng
func (c *Client) EnqueueOtpEmail(ctx context.Context, payload shared.OtpEmailPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal otp email payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeSendOtpEmail, raw)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueEmail),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
		asynq.Retention(time.Hour),
	)
	if err != nil {
		return fmt.Errorf("enqueue otp email: %w", err)
	}

	log.Debug().Str("task_id", info.ID).Str("type", string(payload.Type)).Msg("Otp email enqueued")
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
