package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecommerce-backend/internal/domains/brand"
	categoryRepo "ecommerce-backend/internal/domains/category/repository"
	"ecommerce-backend/internal/shared/apperror"
	"ecommerce-backend/internal/shared/softdelete"
	"ecommerce-backend/pkg/cache"
	"ecommerce-backend/pkg/database"
	"ecommerce-backend/pkg/logger"
)

const (
	brandCacheTTL = 30 * time.Minute
	table         = "brands"
)

var sortable = []string{"name", "slug", "created_at", "updated_at"}

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) brand.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// CacheKey - chỉ cache brand active
func CacheKey(id uuid.UUID) string {
	return "brand:" + id.String()
}

const selectColumns = `
	id, name, slug, slogan, image, created_by, updated_by,
	freezed_at, restored_at, created_at, updated_at`

func scanBrand(row pgx.Row) (*brand.Brand, error) {
	var b brand.Brand
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Slug,
		&b.Slogan,
		&b.Image,
		&b.CreatedBy,
		&b.UpdatedBy,
		&b.FreezedAt,
		&b.RestoredAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func mapError(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return brand.ErrBrandNotFound
	}
	if apperror.IsUniqueViolation(err) {
		return brand.ErrDuplicatedName.Wrap(err)
	}
	return fmt.Errorf("%s brand: %w", op, err)
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, CacheKey(id)); err != nil {
		logger.Warn("brand cache invalidate failed", map[string]interface{}{"brand_id": id.String(), "error": err.Error()})
	}
}

// ========================================
// CREATE & READ
// ========================================

func (r *postgresRepository) Create(ctx context.Context, b *brand.Brand) error {
	const query = `
		INSERT INTO brands (name, slug, slogan, image, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + selectColumns

	created, err := scanBrand(r.pool.QueryRow(ctx, query, b.Name, b.Slug, b.Slogan, b.Image, b.CreatedBy))
	if err != nil {
		return mapError(err, "create")
	}
	*b = *created
	return nil
}

// FindByID - Cache-Aside cho mode Active
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID, mode softdelete.Mode) (*brand.Brand, error) {
	if mode == softdelete.Active {
		var cached brand.Brand
		if found, err := r.cache.Get(ctx, CacheKey(id), &cached); err == nil && found {
			return &cached, nil
		}
	}

	f := softdelete.NewFilter(mode, "").Where("id = ?", id)
	where, args := f.Build()

	b, err := scanBrand(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM brands `+where, args...))
	if err != nil {
		return nil, mapError(err, "find")
	}

	if mode == softdelete.Active {
		if err := r.cache.Set(ctx, CacheKey(id), b, brandCacheTTL); err != nil {
			logger.Warn("brand cache set failed", map[string]interface{}{"brand_id": id.String(), "error": err.Error()})
		}
	}
	return b, nil
}

func (r *postgresRepository) FindByName(ctx context.Context, name string, mode softdelete.Mode) (*brand.Brand, error) {
	f := softdelete.NewFilter(mode, "").Where("name = ?", name)
	where, args := f.Build()

	b, err := scanBrand(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM brands `+where+` LIMIT 1`, args...))
	if err != nil {
		return nil, mapError(err, "find")
	}
	return b, nil
}

func (r *postgresRepository) List(ctx context.Context, q softdelete.PageQuery, mode softdelete.Mode) ([]brand.Brand, int64, error) {
	f := softdelete.NewFilter(mode, "").Search(q.Search, "name", "slug", "slogan")
	where, args := f.Build()

	// STEP 1: COUNT (dùng args trước khi Paginate thêm limit/offset)
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM brands `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count brands: %w", err)
	}

	// STEP 2: PAGE
	query := fmt.Sprintf(`SELECT %s FROM brands %s %s %s`,
		selectColumns, where, f.OrderBy(q.Sort, sortable, "created_at DESC"), f.Paginate(q))

	rows, err := r.pool.Query(ctx, query, f.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := make([]brand.Brand, 0)
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate brands: %w", err)
	}
	return brands, total, nil
}

func (r *postgresRepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM brands WHERE id = ANY($1) AND freezed_at IS NULL`, ids).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count brands by ids: %w", err)
	}
	return n, nil
}

// ========================================
// UPDATE
// ========================================

func (r *postgresRepository) Update(ctx context.Context, b *brand.Brand) error {
	const query = `
		UPDATE brands
		SET name = $2, slug = $3, slogan = $4, updated_by = $5, updated_at = NOW()
		WHERE id = $1 AND freezed_at IS NULL
		RETURNING ` + selectColumns

	updated, err := scanBrand(r.pool.QueryRow(ctx, query, b.ID, b.Name, b.Slug, b.Slogan, b.UpdatedBy))
	if err != nil {
		return mapError(err, "update")
	}
	*b = *updated
	r.invalidate(ctx, b.ID)
	return nil
}

func (r *postgresRepository) UpdateImage(ctx context.Context, id uuid.UUID, image string, updatedBy uuid.UUID) (string, *brand.Brand, error) {
	// old.image lấy từ snapshot trước UPDATE
	const query = `
		UPDATE brands b
		SET image = $2, updated_by = $3, updated_at = NOW()
		FROM (SELECT id, image FROM brands WHERE id = $1 AND freezed_at IS NULL FOR UPDATE) old
		WHERE b.id = old.id
		RETURNING old.image,
			b.id, b.name, b.slug, b.slogan, b.image, b.created_by, b.updated_by,
			b.freezed_at, b.restored_at, b.created_at, b.updated_at`

	var (
		old string
		b   brand.Brand
	)
	err := r.pool.QueryRow(ctx, query, id, image, updatedBy).Scan(
		&old,
		&b.ID, &b.Name, &b.Slug, &b.Slogan, &b.Image, &b.CreatedBy, &b.UpdatedBy,
		&b.FreezedAt, &b.RestoredAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return "", nil, mapError(err, "update image")
	}
	r.invalidate(ctx, id)
	return old, &b, nil
}

// ========================================
// FREEZE / RESTORE / DELETE
// ========================================

func (r *postgresRepository) Freeze(ctx context.Context, id, updatedBy uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, softdelete.FreezeSQL(table), id, updatedBy)
	if err != nil {
		return fmt.Errorf("freeze brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return brand.ErrBrandNotFound
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) Restore(ctx context.Context, id, updatedBy uuid.UUID) (*brand.Brand, error) {
	b, err := scanBrand(r.pool.QueryRow(ctx, softdelete.RestoreSQL(table)+` RETURNING `+selectColumns, id, updatedBy))
	if err != nil {
		return nil, mapError(err, "restore")
	}
	return b, nil
}

func (r *postgresRepository) HardDelete(ctx context.Context, id uuid.UUID) (*brand.Brand, error) {
	var detached []uuid.UUID
	b, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*brand.Brand, error) {
		deleted, err := scanBrand(tx.QueryRow(ctx, softdelete.HardDeleteSQL(table, selectColumns), id))
		if err != nil {
			if apperror.IsForeignKeyViolation(err) {
				return nil, brand.ErrBrandInUse.Wrap(err)
			}
			return nil, mapError(err, "delete")
		}

		// categories.brand_ids không có FK, gỡ tham chiếu thủ công
		detached, err = detachFromCategories(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		return deleted, nil
	})
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	r.invalidateCategories(ctx, detached)
	return b, nil
}

// detachFromCategories trả về id các category vừa bị gỡ brand
func detachFromCategories(ctx context.Context, tx pgx.Tx, brandID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx,
		`UPDATE categories SET brand_ids = array_remove(brand_ids, $1) WHERE $1 = ANY(brand_ids) RETURNING id`, brandID)
	if err != nil {
		return nil, fmt.Errorf("detach brand from categories: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("detach brand from categories: %w", err)
	}
	return ids, nil
}

// invalidateCategories xoá cache category còn giữ brand_ids cũ
func (r *postgresRepository) invalidateCategories(ctx context.Context, ids []uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, categoryRepo.CacheKey(id))
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("category cache invalidate failed", map[string]interface{}{"categories": len(ids), "error": err.Error()})
	}
}
