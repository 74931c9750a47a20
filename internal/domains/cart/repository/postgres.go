package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecommerce-backend/internal/domains/cart"
	"ecommerce-backend/internal/infrastructure/metrics"
	"ecommerce-backend/pkg/database"
)

type postgresRepository struct {
	pool    *pgxpool.Pool
	metrics *metrics.Metrics
}

func NewPostgresRepository(pool *pgxpool.Pool, m *metrics.Metrics) cart.Repository {
	return &postgresRepository{
		pool:    pool,
		metrics: m,
	}
}

// querier - pool hoặc tx
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// load đọc cart + items của user
func load(ctx context.Context, q querier, userID uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	err := q.QueryRow(ctx,
		`SELECT id, created_by, created_at, updated_at FROM carts WHERE created_by = $1`, userID,
	).Scan(&c.ID, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cart.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}

	rows, err := q.Query(ctx,
		`SELECT product_id, quantity FROM cart_items WHERE cart_id = $1 ORDER BY created_at, product_id`, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	c.Items = make([]cart.Item, 0)
	for rows.Next() {
		var it cart.Item
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		c.Items = append(c.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) FindByOwner(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	return load(ctx, r.pool, userID)
}

// UpsertItem chạy trong một transaction:
//  1. INSERT cart ON CONFLICT DO NOTHING → biết cart mới hay cũ, không race
//  2. INSERT item ON CONFLICT (cart_id, product_id) → set quantity
func (r *postgresRepository) UpsertItem(ctx context.Context, userID uuid.UUID, item cart.Item) (*cart.Cart, bool, error) {
	defer r.metrics.TrackDBOperation("cart_upsert")(time.Now())

	var created bool
	c, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*cart.Cart, error) {
		var cartID uuid.UUID
		err := tx.QueryRow(ctx, `
			INSERT INTO carts (created_by) VALUES ($1)
			ON CONFLICT (created_by) DO NOTHING
			RETURNING id`, userID).Scan(&cartID)
		switch {
		case err == nil:
			created = true
		case errors.Is(err, pgx.ErrNoRows):
			if err := tx.QueryRow(ctx,
				`SELECT id FROM carts WHERE created_by = $1 FOR UPDATE`, userID).Scan(&cartID); err != nil {
				return nil, fmt.Errorf("lock cart: %w", err)
			}
		default:
			return nil, fmt.Errorf("create cart: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO cart_items (cart_id, product_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (cart_id, product_id)
			DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()`,
			cartID, item.ProductID, item.Quantity); err != nil {
			return nil, fmt.Errorf("upsert cart item: %w", err)
		}

		if !created {
			if _, err := tx.Exec(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID); err != nil {
				return nil, fmt.Errorf("touch cart: %w", err)
			}
		}
		return load(ctx, tx, userID)
	})
	if err != nil {
		return nil, false, err
	}
	return c, created, nil
}

func (r *postgresRepository) RemoveItems(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (*cart.Cart, error) {
	defer r.metrics.TrackDBOperation("cart_remove_items")(time.Now())

	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*cart.Cart, error) {
		var cartID uuid.UUID
		err := tx.QueryRow(ctx,
			`UPDATE carts SET updated_at = NOW() WHERE created_by = $1 RETURNING id`, userID).Scan(&cartID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, cart.ErrCartNotFound
			}
			return nil, fmt.Errorf("touch cart: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = ANY($2)`, cartID, productIDs); err != nil {
			return nil, fmt.Errorf("remove cart items: %w", err)
		}
		return load(ctx, tx, userID)
	})
}

// Delete - cart_items xoá theo ON DELETE CASCADE
func (r *postgresRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE created_by = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cart.ErrCartNotFound
	}
	return nil
}
