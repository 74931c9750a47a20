package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ecommerce-backend/internal/domains/brand"
	"ecommerce-backend/internal/domains/category"
	"ecommerce-backend/internal/domains/product"
	"ecommerce-backend/internal/infrastructure/metrics"
	"ecommerce-backend/internal/infrastructure/storage"
	"ecommerce-backend/internal/shared/softdelete"
	"ecommerce-backend/internal/shared/utils"
	"ecommerce-backend/pkg/logger"
)

type productService struct {
	repo       product.Repository
	categories category.Repository
	brands     brand.Repository
	storage    storage.Storage
	validator  *storage.ImageValidator
	metrics    *metrics.Metrics
}

func NewProductService(
	repo product.Repository,
	categories category.Repository,
	brands brand.Repository,
	store storage.Storage,
	validator *storage.ImageValidator,
	m *metrics.Metrics,
) product.Service {
	return &productService{
		repo:       repo,
		categories: categories,
		brands:     brands,
		storage:    store,
		validator:  validator,
		metrics:    m,
	}
}

// ========================================
// CREATE
// ========================================

// Create kiểm tra name, category, brand → upload ảnh → insert
func (s *productService) Create(ctx context.Context, actor uuid.UUID, req product.CreateProductRequest, files []storage.File) (*product.Product, error) {
	// ========== STEP 1: Name unique ==========
	if err := s.ensureNameAvailable(ctx, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	// ========== STEP 2: References ==========
	cat, err := s.findCategory(ctx, req.CategoryID())
	if err != nil {
		return nil, err
	}
	if err := s.ensureBrand(ctx, req.BrandID()); err != nil {
		return nil, err
	}

	// ========== STEP 3: Upload ==========
	if len(files) > product.MaxImages {
		return nil, product.ErrTooManyImages
	}
	files, err = s.validator.ValidateMany(files)
	if err != nil {
		return nil, err
	}
	assetFolderID := uuid.New()
	images, err := s.storage.UploadMany(ctx, product.AssetFolder(cat.AssetFolder(), assetFolderID), files)
	s.metrics.RecordAsset("upload", err)
	if err != nil {
		return nil, fmt.Errorf("upload product images: %w", err)
	}

	// ========== STEP 4: Insert ==========
	original, discount := req.Prices()
	p := &product.Product{
		Name:            req.Name,
		Slug:            utils.GenerateSlug(req.Name),
		Description:     optional(req.Description),
		Images:          images,
		OriginalPrice:   original,
		DiscountPercent: discount,
		SalePrice:       product.CalculateSalePrice(original, discount),
		Stock:           req.Stock,
		AssetFolderID:   assetFolderID,
		CategoryID:      cat.ID,
		BrandID:         req.BrandID(),
		CreatedBy:       actor,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.cleanup(ctx, images...)
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": p.ID.String(),
		"name":       p.Name,
		"sale_price": p.SalePrice.String(),
		"images":     len(p.Images),
	})
	return p, nil
}

// ========================================
// READ
// ========================================

func (s *productService) List(ctx context.Context, q softdelete.PageQuery, mode softdelete.Mode) (softdelete.Page[product.Product], error) {
	products, total, err := s.repo.List(ctx, q, mode)
	if err != nil {
		return softdelete.Page[product.Product]{}, err
	}
	return softdelete.NewPage(products, total, q), nil
}

func (s *productService) FindOne(ctx context.Context, id uuid.UUID, mode softdelete.Mode) (*product.Product, error) {
	return s.repo.FindByID(ctx, id, mode)
}

// ========================================
// UPDATE
// ========================================

// Update - partial update, sale_price tính lại khi giá hoặc discount đổi
func (s *productService) Update(ctx context.Context, actor, id uuid.UUID, req product.UpdateProductRequest) (*product.Product, error) {
	p, err := s.repo.FindByID(ctx, id, softdelete.Active)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != p.Name {
		if err := s.ensureNameAvailable(ctx, *req.Name, id); err != nil {
			return nil, err
		}
		p.Name = *req.Name
		p.Slug = utils.GenerateSlug(p.Name)
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Category != nil {
		cat, err := s.findCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		p.CategoryID = cat.ID
	}
	if req.Brand != nil {
		if err := s.ensureBrand(ctx, *req.Brand); err != nil {
			return nil, err
		}
		p.BrandID = *req.Brand
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.TouchesPrice() {
		if req.OriginalPrice != nil {
			p.OriginalPrice = *req.OriginalPrice
		}
		if req.DiscountPercent != nil {
			p.DiscountPercent = *req.DiscountPercent
		}
		p.SalePrice = product.CalculateSalePrice(p.OriginalPrice, p.DiscountPercent)
	}
	p.UpdatedBy = &actor

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateAttachment - images = (images - removeAttachments) + uploaded, tối đa 5
// Ảnh bị gỡ chỉ xoá khỏi storage sau khi DB commit
func (s *productService) UpdateAttachment(ctx context.Context, actor, id uuid.UUID, req product.UpdateAttachmentRequest, files []storage.File) (*product.Product, error) {
	p, err := s.repo.FindByID(ctx, id, softdelete.Active)
	if err != nil {
		return nil, err
	}

	remove := utils.UniqueStrings(req.RemoveAttachments)
	if len(remove) == 0 && len(files) == 0 {
		return p, nil
	}

	// Chặn sớm trước khi upload
	kept, _ := utils.MergeKeys(p.Images, remove, nil)
	if len(kept)+len(files) > product.MaxImages {
		return nil, product.ErrTooManyImages
	}

	var uploaded []string
	if len(files) > 0 {
		folder, err := s.assetFolder(ctx, p)
		if err != nil {
			return nil, err
		}
		files, err = s.validator.ValidateMany(files)
		if err != nil {
			return nil, err
		}
		uploaded, err = s.storage.UploadMany(ctx, folder, files)
		s.metrics.RecordAsset("upload", err)
		if err != nil {
			return nil, fmt.Errorf("upload product images: %w", err)
		}
	}

	removed, updated, err := s.repo.UpdateImages(ctx, id, remove, uploaded, actor)
	if err != nil {
		s.cleanup(ctx, uploaded...)
		return nil, err
	}

	if len(removed) > 0 {
		s.cleanup(ctx, removed...)
	}
	return updated, nil
}

// ========================================
// FREEZE / RESTORE / DELETE
// ========================================

func (s *productService) Freeze(ctx context.Context, actor, id uuid.UUID) error {
	return s.repo.Freeze(ctx, id, actor)
}

func (s *productService) Restore(ctx context.Context, actor, id uuid.UUID) (*product.Product, error) {
	return s.repo.Restore(ctx, id, actor)
}

// Delete - hard delete rồi xoá asset folder của product
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.HardDelete(ctx, id)
	if err != nil {
		return err
	}

	ctx = context.WithoutCancel(ctx)
	// ảnh có thể nằm ở folder của category cũ nếu product từng đổi category
	s.cleanup(ctx, p.Images...)

	folder, err := s.assetFolder(ctx, p)
	if err != nil {
		logger.Error("Failed to resolve product asset folder", err)
		return nil
	}
	err = s.storage.DeleteByPrefix(ctx, folder)
	s.metrics.RecordAsset("delete", err)
	if err != nil {
		logger.Error("Failed to delete product asset folder", err)
	}
	return nil
}

// ========================================
// HELPERS
// ========================================

func (s *productService) ensureNameAvailable(ctx context.Context, name string, except uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name, softdelete.All)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == except {
		return nil
	}
	if existing.IsFrozen() {
		return product.ErrDuplicatedArchived
	}
	return product.ErrDuplicatedName
}

// findCategory - category phải active
func (s *productService) findCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	cat, err := s.categories.FindByID(ctx, id, softdelete.Active)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return nil, product.ErrCategoryNotFound
		}
		return nil, err
	}
	return cat, nil
}

func (s *productService) ensureBrand(ctx context.Context, id uuid.UUID) error {
	if _, err := s.brands.FindByID(ctx, id, softdelete.Active); err != nil {
		if errors.Is(err, brand.ErrBrandNotFound) {
			return product.ErrBrandNotFound
		}
		return err
	}
	return nil
}

// assetFolder - category có thể đã bị freeze, vẫn lấy folder của nó
func (s *productService) assetFolder(ctx context.Context, p *product.Product) (string, error) {
	cat, err := s.categories.FindByID(ctx, p.CategoryID, softdelete.All)
	if err != nil {
		return "", err
	}
	return product.AssetFolder(cat.AssetFolder(), p.AssetFolderID), nil
}

func (s *productService) cleanup(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	err := s.storage.DeleteMany(context.WithoutCancel(ctx), keys)
	s.metrics.RecordAsset("delete", err)
	if err != nil {
		logger.Error("Failed to delete product assets", err)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
