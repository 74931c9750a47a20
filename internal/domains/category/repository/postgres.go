package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecommerce-backend/internal/domains/category"
	"ecommerce-backend/internal/shared/apperror"
	"ecommerce-backend/internal/shared/softdelete"
	"ecommerce-backend/pkg/cache"
	"ecommerce-backend/pkg/logger"
)

const (
	categoryCacheTTL = 30 * time.Minute
	table            = "categories"
)

var sortable = []string{"name", "slug", "created_at", "updated_at"}

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository tạo repository instance
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) category.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func CacheKey(id uuid.UUID) string {
	return "category:" + id.String()
}

const selectColumns = `
	id, name, slug, description, image, asset_folder_id, brand_ids,
	created_by, updated_by, freezed_at, restored_at, created_at, updated_at`

func scanCategory(row pgx.Row) (*category.Category, error) {
	var c category.Category
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.Description,
		&c.Image,
		&c.AssetFolderID,
		&c.BrandIDs,
		&c.CreatedBy,
		&c.UpdatedBy,
		&c.FreezedAt,
		&c.RestoredAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if c.BrandIDs == nil {
		c.BrandIDs = []uuid.UUID{}
	}
	return &c, nil
}

func mapError(err error, op string) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return category.ErrCategoryNotFound
	case apperror.IsUniqueViolation(err):
		return category.ErrDuplicatedName.Wrap(err)
	case apperror.IsForeignKeyViolation(err):
		return category.ErrCategoryInUse.Wrap(err)
	default:
		return fmt.Errorf("%s category: %w", op, err)
	}
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, CacheKey(id)); err != nil {
		logger.Warn("category cache invalidate failed", map[string]interface{}{"category_id": id.String(), "error": err.Error()})
	}
}

// ========================================
// CREATE & READ
// ========================================

func (r *postgresRepository) Create(ctx context.Context, c *category.Category) error {
	const query = `
		INSERT INTO categories (name, slug, description, image, asset_folder_id, brand_ids, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + selectColumns

	created, err := scanCategory(r.pool.QueryRow(ctx, query,
		c.Name,
		c.Slug,
		c.Description,
		c.Image,
		c.AssetFolderID,
		c.BrandIDs,
		c.CreatedBy,
	))
	if err != nil {
		return mapError(err, "create")
	}
	*c = *created
	return nil
}

// FindByID - Cache-Aside cho mode Active
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID, mode softdelete.Mode) (*category.Category, error) {
	if mode == softdelete.Active {
		var cached category.Category
		if found, err := r.cache.Get(ctx, CacheKey(id), &cached); err == nil && found {
			return &cached, nil
		}
	}

	where, args := softdelete.NewFilter(mode, "").Where("id = ?", id).Build()
	c, err := scanCategory(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM categories `+where, args...))
	if err != nil {
		return nil, mapError(err, "find")
	}

	if mode == softdelete.Active {
		if err := r.cache.Set(ctx, CacheKey(id), c, categoryCacheTTL); err != nil {
			logger.Warn("category cache set failed", map[string]interface{}{"category_id": id.String(), "error": err.Error()})
		}
	}
	return c, nil
}

func (r *postgresRepository) FindByName(ctx context.Context, name string, mode softdelete.Mode) (*category.Category, error) {
	where, args := softdelete.NewFilter(mode, "").Where("name = ?", name).Build()
	c, err := scanCategory(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM categories `+where+` LIMIT 1`, args...))
	if err != nil {
		return nil, mapError(err, "find")
	}
	return c, nil
}

func (r *postgresRepository) List(ctx context.Context, q softdelete.PageQuery, mode softdelete.Mode) ([]category.Category, int64, error) {
	f := softdelete.NewFilter(mode, "").Search(q.Search, "name", "slug", "description")
	where, args := f.Build()

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM categories %s %s %s`,
		selectColumns, where, f.OrderBy(q.Sort, sortable, "created_at DESC"), f.Paginate(q))

	rows, err := r.pool.Query(ctx, query, f.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]category.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, total, nil
}

// ========================================
// UPDATE
// ========================================

func (r *postgresRepository) Update(ctx context.Context, c *category.Category, replaceBrands bool) error {
	// brand_ids trong c có thể lấy từ cache cũ, chỉ ghi khi request gửi brands
	const query = `
		UPDATE categories
		SET name = $2, slug = $3, description = $4,
			brand_ids = CASE WHEN $7::boolean THEN $5::uuid[] ELSE brand_ids END,
			updated_by = $6, updated_at = NOW()
		WHERE id = $1 AND freezed_at IS NULL
		RETURNING ` + selectColumns

	updated, err := scanCategory(r.pool.QueryRow(ctx, query,
		c.ID, c.Name, c.Slug, c.Description, c.BrandIDs, c.UpdatedBy, replaceBrands))
	if err != nil {
		return mapError(err, "update")
	}
	*c = *updated
	r.invalidate(ctx, c.ID)
	return nil
}

func (r *postgresRepository) UpdateImage(ctx context.Context, id uuid.UUID, image string, updatedBy uuid.UUID) (string, *category.Category, error) {
	const query = `
		UPDATE categories c
		SET image = $2, updated_by = $3, updated_at = NOW()
		FROM (SELECT id, image FROM categories WHERE id = $1 AND freezed_at IS NULL FOR UPDATE) old
		WHERE c.id = old.id
		RETURNING old.image,
			c.id, c.name, c.slug, c.description, c.image, c.asset_folder_id, c.brand_ids,
			c.created_by, c.updated_by, c.freezed_at, c.restored_at, c.created_at, c.updated_at`

	var (
		old string
		c   category.Category
	)
	err := r.pool.QueryRow(ctx, query, id, image, updatedBy).Scan(
		&old,
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.AssetFolderID, &c.BrandIDs,
		&c.CreatedBy, &c.UpdatedBy, &c.FreezedAt, &c.RestoredAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return "", nil, mapError(err, "update image")
	}
	r.invalidate(ctx, id)
	return old, &c, nil
}

// ========================================
// FREEZE / RESTORE / DELETE
// ========================================

func (r *postgresRepository) Freeze(ctx context.Context, id, updatedBy uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, softdelete.FreezeSQL(table), id, updatedBy)
	if err != nil {
		return fmt.Errorf("freeze category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) Restore(ctx context.Context, id, updatedBy uuid.UUID) (*category.Category, error) {
	c, err := scanCategory(r.pool.QueryRow(ctx, softdelete.RestoreSQL(table)+` RETURNING `+selectColumns, id, updatedBy))
	if err != nil {
		return nil, mapError(err, "restore")
	}
	return c, nil
}

// HardDelete - products.category_id ON DELETE RESTRICT → ErrCategoryInUse
func (r *postgresRepository) HardDelete(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	c, err := scanCategory(r.pool.QueryRow(ctx, softdelete.HardDeleteSQL(table, selectColumns), id))
	if err != nil {
		return nil, mapError(err, "delete")
	}
	r.invalidate(ctx, id)
	return c, nil
}
