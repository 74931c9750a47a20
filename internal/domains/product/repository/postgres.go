package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"ecommerce-backend/internal/domains/product"
	"ecommerce-backend/internal/shared/apperror"
	"ecommerce-backend/internal/shared/softdelete"
	"ecommerce-backend/internal/shared/utils"
	"ecommerce-backend/pkg/cache"
	"ecommerce-backend/pkg/database"
	"ecommerce-backend/pkg/logger"
)

const (
	productCacheTTL = 15 * time.Minute
	table           = "products"
)

var sortable = []string{"name", "slug", "sale_price", "original_price", "stock", "sold_items", "created_at", "updated_at"}

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) product.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func CacheKey(id uuid.UUID) string {
	return "product:" + id.String()
}

const selectColumns = `
	id, name, slug, description, images, original_price, discount_percent, sale_price,
	stock, sold_items, asset_folder_id, category_id, brand_id,
	created_by, updated_by, freezed_at, restored_at, created_at, updated_at`

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		pq.Array(&p.Images),
		&p.OriginalPrice,
		&p.DiscountPercent,
		&p.SalePrice,
		&p.Stock,
		&p.SoldItems,
		&p.AssetFolderID,
		&p.CategoryID,
		&p.BrandID,
		&p.CreatedBy,
		&p.UpdatedBy,
		&p.FreezedAt,
		&p.RestoredAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return &p, nil
}

func collect(rows pgx.Rows) ([]product.Product, error) {
	defer rows.Close()

	products := make([]product.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func mapError(err error, op string) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return product.ErrProductNotFound
	case apperror.IsUniqueViolation(err):
		return product.ErrDuplicatedName.Wrap(err)
	default:
		return fmt.Errorf("%s product: %w", op, err)
	}
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, CacheKey(id)); err != nil {
		logger.Warn("product cache invalidate failed", map[string]interface{}{"product_id": id.String(), "error": err.Error()})
	}
}

// ========================================
// CREATE & READ
// ========================================

func (r *postgresRepository) Create(ctx context.Context, p *product.Product) error {
	const query = `
		INSERT INTO products (
			name, slug, description, images, original_price, discount_percent, sale_price,
			stock, asset_folder_id, category_id, brand_id, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + selectColumns

	created, err := scanProduct(r.pool.QueryRow(ctx, query,
		p.Name,
		p.Slug,
		p.Description,
		pq.Array(p.Images),
		p.OriginalPrice,
		p.DiscountPercent,
		p.SalePrice,
		p.Stock,
		p.AssetFolderID,
		p.CategoryID,
		p.BrandID,
		p.CreatedBy,
	))
	if err != nil {
		return mapError(err, "create")
	}
	*p = *created
	return nil
}

// FindByID - Cache-Aside cho mode Active
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID, mode softdelete.Mode) (*product.Product, error) {
	if mode == softdelete.Active {
		var cached product.Product
		if found, err := r.cache.Get(ctx, CacheKey(id), &cached); err == nil && found {
			return &cached, nil
		}
	}

	where, args := softdelete.NewFilter(mode, "").Where("id = ?", id).Build()
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM products `+where, args...))
	if err != nil {
		return nil, mapError(err, "find")
	}

	if mode == softdelete.Active {
		if err := r.cache.Set(ctx, CacheKey(id), p, productCacheTTL); err != nil {
			logger.Warn("product cache set failed", map[string]interface{}{"product_id": id.String(), "error": err.Error()})
		}
	}
	return p, nil
}

func (r *postgresRepository) FindByName(ctx context.Context, name string, mode softdelete.Mode) (*product.Product, error) {
	where, args := softdelete.NewFilter(mode, "").Where("name = ?", name).Build()
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM products `+where+` LIMIT 1`, args...))
	if err != nil {
		return nil, mapError(err, "find")
	}
	return p, nil
}

func (r *postgresRepository) FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]product.Product, error) {
	if len(ids) == 0 {
		return []product.Product{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM products WHERE id = ANY($1) AND freezed_at IS NULL`, ids)
	if err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}
	return collect(rows)
}

func (r *postgresRepository) List(ctx context.Context, q softdelete.PageQuery, mode softdelete.Mode) ([]product.Product, int64, error) {
	f := softdelete.NewFilter(mode, "").Search(q.Search, "name", "slug", "description")
	where, args := f.Build()

	// STEP 1: COUNT
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	// STEP 2: PAGE
	query := fmt.Sprintf(`SELECT %s FROM products %s %s %s`,
		selectColumns, where, f.OrderBy(q.Sort, sortable, "created_at DESC"), f.Paginate(q))

	rows, err := r.pool.Query(ctx, query, f.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	products, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ========================================
// UPDATE
// ========================================

func (r *postgresRepository) Update(ctx context.Context, p *product.Product) error {
	const query = `
		UPDATE products
		SET name = $2, slug = $3, description = $4,
		    original_price = $5, discount_percent = $6, sale_price = $7, stock = $8,
		    category_id = $9, brand_id = $10, updated_by = $11, updated_at = NOW()
		WHERE id = $1 AND freezed_at IS NULL
		RETURNING ` + selectColumns

	updated, err := scanProduct(r.pool.QueryRow(ctx, query,
		p.ID,
		p.Name,
		p.Slug,
		p.Description,
		p.OriginalPrice,
		p.DiscountPercent,
		p.SalePrice,
		p.Stock,
		p.CategoryID,
		p.BrandID,
		p.UpdatedBy,
	))
	if err != nil {
		return mapError(err, "update")
	}
	*p = *updated
	r.invalidate(ctx, p.ID)
	return nil
}

type imagesUpdate struct {
	removed []string
	product *product.Product
}

// UpdateImages - lock row, tính tập mới, kiểm tra giới hạn rồi ghi
func (r *postgresRepository) UpdateImages(ctx context.Context, id uuid.UUID, remove, add []string, updatedBy uuid.UUID) ([]string, *product.Product, error) {
	res, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (imagesUpdate, error) {
		// STEP 1: LOCK
		var current []string
		err := tx.QueryRow(ctx,
			`SELECT images FROM products WHERE id = $1 AND freezed_at IS NULL FOR UPDATE`, id,
		).Scan(pq.Array(&current))
		if err != nil {
			return imagesUpdate{}, mapError(err, "lock")
		}

		// STEP 2: (current - remove) + add
		merged, removed := utils.MergeKeys(current, remove, add)
		if len(merged) > product.MaxImages {
			return imagesUpdate{}, product.ErrTooManyImages
		}

		// STEP 3: WRITE
		p, err := scanProduct(tx.QueryRow(ctx, `
			UPDATE products
			SET images = $2, updated_by = $3, updated_at = NOW()
			WHERE id = $1
			RETURNING `+selectColumns,
			id, pq.Array(merged), updatedBy))
		if err != nil {
			return imagesUpdate{}, mapError(err, "update images")
		}
		return imagesUpdate{removed: removed, product: p}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	r.invalidate(ctx, id)
	return res.removed, res.product, nil
}

// ========================================
// FREEZE / RESTORE / DELETE
// ========================================

func (r *postgresRepository) Freeze(ctx context.Context, id, updatedBy uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, softdelete.FreezeSQL(table), id, updatedBy)
	if err != nil {
		return fmt.Errorf("freeze product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) Restore(ctx context.Context, id, updatedBy uuid.UUID) (*product.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, softdelete.RestoreSQL(table)+` RETURNING `+selectColumns, id, updatedBy))
	if err != nil {
		return nil, mapError(err, "restore")
	}
	return p, nil
}

// HardDelete - cart_items tham chiếu product bị xoá theo (ON DELETE CASCADE)
func (r *postgresRepository) HardDelete(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, softdelete.HardDeleteSQL(table, selectColumns), id))
	if err != nil {
		return nil, mapError(err, "delete")
	}
	r.invalidate(ctx, id)
	return p, nil
}
