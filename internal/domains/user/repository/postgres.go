package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/internal/shared/apperror"
	"ecommerce-backend/pkg/cache"
	"ecommerce-backend/pkg/logger"
)

const userCacheTTL = 15 * time.Minute

// postgresRepository là concrete implementation của user.Repository
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository return interface để service không phụ thuộc pgx
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) user.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// CacheKey - key cache-aside của user
func CacheKey(id uuid.UUID) string {
	return "user:" + id.String()
}

// cachedUser giữ cả các field json:"-" của user.User
type cachedUser struct {
	Profile               user.User  `json:"profile"`
	Password              *string    `json:"password,omitempty"`
	ChangeCredentialsTime *time.Time `json:"changeCredentialsTime,omitempty"`
}

const selectColumns = `
	id, first_name, last_name, email, password, role, provider,
	preferred_language, gender, profile_image, cover_images,
	confirmed_at, change_credentials_time, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Password,
		&u.Role,
		&u.Provider,
		&u.PreferredLanguage,
		&u.Gender,
		&u.ProfileImage,
		pq.Array(&u.CoverImages),
		&u.ConfirmedAt,
		&u.ChangeCredentialsTime,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ========================================
// BASIC CRUD OPERATIONS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	const query = `
		INSERT INTO users (
			first_name, last_name, email, password, role, provider,
			preferred_language, gender, cover_images
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		u.FirstName,
		u.LastName,
		strings.ToLower(u.Email),
		u.Password,
		u.Role,
		u.Provider,
		u.PreferredLanguage,
		u.Gender,
		pq.Array(u.CoverImages),
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if apperror.IsUniqueViolation(err) {
			return user.ErrEmailExists.Wrap(err)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByID - Cache-Aside: Redis trước, miss thì query DB rồi set cache
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	// STEP 1: CHECK CACHE FIRST
	var cached cachedUser
	if found, err := r.cache.Get(ctx, CacheKey(id), &cached); err == nil && found {
		u := cached.Profile
		u.Password = cached.Password
		u.ChangeCredentialsTime = cached.ChangeCredentialsTime
		return &u, nil
	}

	// STEP 2: CACHE MISS - QUERY DATABASE
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	// STEP 3: SET CACHE - lỗi cache không làm fail request
	entry := cachedUser{Profile: *u, Password: u.Password, ChangeCredentialsTime: u.ChangeCredentialsTime}
	if err := r.cache.Set(ctx, CacheKey(id), entry, userCacheTTL); err != nil {
		logger.Warn("user cache set failed", map[string]interface{}{"user_id": id.String(), "error": err.Error()})
	}

	return u, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// ========================================
// CREDENTIALS
// ========================================

func (r *postgresRepository) MarkConfirmed(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET confirmed_at = NOW(), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark confirmed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string, changedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password = $2, change_credentials_time = $3, updated_at = NOW()
		WHERE id = $1`, id, hash, changedAt)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	r.invalidate(ctx, id)
	return nil
}

// ========================================
// ASSETS
// ========================================

func (r *postgresRepository) UpdateProfileImage(ctx context.Context, id uuid.UUID, key string) (*string, error) {
	// Lấy key cũ và update trong cùng một statement
	const query = `
		UPDATE users u
		SET profile_image = $2, updated_at = NOW()
		FROM (SELECT id, profile_image FROM users WHERE id = $1 FOR UPDATE) old
		WHERE u.id = old.id
		RETURNING old.profile_image`

	var old *string
	if err := r.pool.QueryRow(ctx, query, id, key).Scan(&old); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile image: %w", err)
	}
	r.invalidate(ctx, id)
	return old, nil
}

func (r *postgresRepository) UpdateCoverImages(ctx context.Context, id uuid.UUID, keys []string) ([]string, error) {
	const query = `
		UPDATE users u
		SET cover_images = $2, updated_at = NOW()
		FROM (SELECT id, cover_images FROM users WHERE id = $1 FOR UPDATE) old
		WHERE u.id = old.id
		RETURNING old.cover_images`

	var old []string
	if err := r.pool.QueryRow(ctx, query, id, pq.Array(keys)).Scan(pq.Array(&old)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("update cover images: %w", err)
	}
	r.invalidate(ctx, id)
	return old, nil
}

// invalidate xoá cache sau mọi thay đổi, token decode sẽ đọc lại từ DB
func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, CacheKey(id)); err != nil {
		logger.Warn("user cache invalidate failed", map[string]interface{}{"user_id": id.String(), "error": err.Error()})
	}
}
