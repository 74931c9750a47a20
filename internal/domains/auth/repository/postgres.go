package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecommerce-backend/internal/domains/auth"
	"ecommerce-backend/internal/shared"
)

type otpRepository struct {
	pool *pgxpool.Pool
}

func NewOtpRepository(pool *pgxpool.Pool) auth.OtpRepository {
	return &otpRepository{pool: pool}
}

func (r *otpRepository) Create(ctx context.Context, otp *auth.Otp) error {
	const query = `
		INSERT INTO otps (code, type, created_by, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, otp.Code, otp.Type, otp.CreatedBy, otp.ExpiresAt).
		Scan(&otp.ID, &otp.CreatedAt)
	if err != nil {
		return fmt.Errorf("create otp: %w", err)
	}
	return nil
}

func (r *otpRepository) FindActive(ctx context.Context, userID uuid.UUID, typ shared.OtpType, now time.Time) (*auth.Otp, error) {
	const query = `
		SELECT id, code, type, created_by, expires_at, created_at
		FROM otps
		WHERE created_by = $1 AND type = $2 AND expires_at > $3
		ORDER BY created_at DESC
		LIMIT 1`

	var otp auth.Otp
	err := r.pool.QueryRow(ctx, query, userID, typ, now).Scan(
		&otp.ID,
		&otp.Code,
		&otp.Type,
		&otp.CreatedBy,
		&otp.ExpiresAt,
		&otp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active otp: %w", err)
	}
	return &otp, nil
}

func (r *otpRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM otps WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}

func (r *otpRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM otps WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired otps: %w", err)
	}
	return tag.RowsAffected(), nil
}
