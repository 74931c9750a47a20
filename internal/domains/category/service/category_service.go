package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ecommerce-backend/internal/domains/brand"
	"ecommerce-backend/internal/domains/category"
	"ecommerce-backend/internal/infrastructure/metrics"
	"ecommerce-backend/internal/infrastructure/storage"
	"ecommerce-backend/internal/shared/softdelete"
	"ecommerce-backend/internal/shared/utils"
	"ecommerce-backend/pkg/logger"
)

type categoryService struct {
	repo      category.Repository
	brands    brand.Repository
	storage   storage.Storage
	validator *storage.ImageValidator
	metrics   *metrics.Metrics
}

func NewCategoryService(
	repo category.Repository,
	brands brand.Repository,
	store storage.Storage,
	validator *storage.ImageValidator,
	m *metrics.Metrics,
) category.Service {
	return &categoryService{
		repo:      repo,
		brands:    brands,
		storage:   store,
		validator: validator,
		metrics:   m,
	}
}

// ========================================
// CREATE
// ========================================

func (s *categoryService) Create(ctx context.Context, actor uuid.UUID, req category.CreateCategoryRequest, file storage.File) (*category.Category, error) {
	// ========== STEP 1: Name unique ==========
	if err := s.ensureNameAvailable(ctx, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	// ========== STEP 2: Brands tồn tại ==========
	brandIDs := req.BrandIDs()
	if err := s.ensureBrandsExist(ctx, brandIDs); err != nil {
		return nil, err
	}

	// ========== STEP 3: Upload vào Category/{assetFolderId} ==========
	file, err := s.validator.Validate(file)
	if err != nil {
		return nil, err
	}
	assetFolderID := uuid.New()
	image, err := s.storage.Upload(ctx, category.AssetFolder(assetFolderID), file)
	s.metrics.RecordAsset("upload", err)
	if err != nil {
		return nil, fmt.Errorf("upload category image: %w", err)
	}

	// ========== STEP 4: Insert ==========
	c := &category.Category{
		Name:          req.Name,
		Slug:          utils.GenerateSlug(req.Name),
		Description:   optional(req.Description),
		Image:         image,
		AssetFolderID: assetFolderID,
		BrandIDs:      brandIDs,
		CreatedBy:     actor,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.cleanup(ctx, image)
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": c.ID.String(),
		"name":        c.Name,
		"brands":      len(c.BrandIDs),
	})
	return c, nil
}

// ========================================
// READ
// ========================================

func (s *categoryService) List(ctx context.Context, q softdelete.PageQuery, mode softdelete.Mode) (softdelete.Page[category.Category], error) {
	categories, total, err := s.repo.List(ctx, q, mode)
	if err != nil {
		return softdelete.Page[category.Category]{}, err
	}
	return softdelete.NewPage(categories, total, q), nil
}

func (s *categoryService) FindOne(ctx context.Context, id uuid.UUID, mode softdelete.Mode) (*category.Category, error) {
	return s.repo.FindByID(ctx, id, mode)
}

// ========================================
// UPDATE
// ========================================

// Update - brands gửi lên thay thế toàn bộ danh sách cũ
func (s *categoryService) Update(ctx context.Context, actor, id uuid.UUID, req category.UpdateCategoryRequest) (*category.Category, error) {
	c, err := s.repo.FindByID(ctx, id, softdelete.Active)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != c.Name {
		if err := s.ensureNameAvailable(ctx, *req.Name, id); err != nil {
			return nil, err
		}
		c.Name = *req.Name
		c.Slug = utils.GenerateSlug(c.Name)
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Brands != nil {
		ids := utils.UniqueUUIDs(*req.Brands)
		if err := s.ensureBrandsExist(ctx, ids); err != nil {
			return nil, err
		}
		c.BrandIDs = ids
	}
	c.UpdatedBy = &actor

	if err := s.repo.Update(ctx, c, req.Brands != nil); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateAttachment - ảnh mới vẫn nằm trong asset folder của category
func (s *categoryService) UpdateAttachment(ctx context.Context, actor, id uuid.UUID, file storage.File) (*category.Category, error) {
	current, err := s.repo.FindByID(ctx, id, softdelete.Active)
	if err != nil {
		return nil, err
	}

	file, err = s.validator.Validate(file)
	if err != nil {
		return nil, err
	}
	image, err := s.storage.Upload(ctx, current.AssetFolder(), file)
	s.metrics.RecordAsset("upload", err)
	if err != nil {
		return nil, fmt.Errorf("upload category image: %w", err)
	}

	old, c, err := s.repo.UpdateImage(ctx, id, image, actor)
	if err != nil {
		s.cleanup(ctx, image)
		return nil, err
	}

	if old != "" && old != image {
		s.cleanup(ctx, old)
	}
	return c, nil
}

// ========================================
// FREEZE / RESTORE / DELETE
// ========================================

func (s *categoryService) Freeze(ctx context.Context, actor, id uuid.UUID) error {
	return s.repo.Freeze(ctx, id, actor)
}

func (s *categoryService) Restore(ctx context.Context, actor, id uuid.UUID) (*category.Category, error) {
	return s.repo.Restore(ctx, id, actor)
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.HardDelete(ctx, id)
	if err != nil {
		return err
	}

	err = s.storage.DeleteByPrefix(context.WithoutCancel(ctx), c.AssetFolder())
	s.metrics.RecordAsset("delete", err)
	if err != nil {
		logger.Error("Failed to delete category asset folder", err)
	}
	return nil
}

// ========================================
// HELPERS
// ========================================

func (s *categoryService) ensureNameAvailable(ctx context.Context, name string, except uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name, softdelete.All)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == except {
		return nil
	}
	if existing.IsFrozen() {
		return category.ErrDuplicatedArchived
	}
	return category.ErrDuplicatedName
}

// ensureBrandsExist - ids đã unique, mọi brand phải active
func (s *categoryService) ensureBrandsExist(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	n, err := s.brands.CountByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if n != len(ids) {
		return category.ErrBrandsNotFound
	}
	return nil
}

func (s *categoryService) cleanup(ctx context.Context, keys ...string) {
	err := s.storage.DeleteMany(context.WithoutCancel(ctx), keys)
	s.metrics.RecordAsset("delete", err)
	if err != nil {
		logger.Error("Failed to delete category assets", err)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
