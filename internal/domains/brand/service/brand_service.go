package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ecommerce-backend/internal/domains/brand"
	"ecommerce-backend/internal/infrastructure/metrics"
	"ecommerce-backend/internal/infrastructure/storage"
	"ecommerce-backend/internal/shared/softdelete"
	"ecommerce-backend/internal/shared/utils"
	"ecommerce-backend/pkg/logger"
)

type brandService struct {
	repo      brand.Repository
	storage   storage.Storage
	validator *storage.ImageValidator
	metrics   *metrics.Metrics
}

func NewBrandService(
	repo brand.Repository,
	store storage.Storage,
	validator *storage.ImageValidator,
	m *metrics.Metrics,
) brand.Service {
	return &brandService{
		repo:      repo,
		storage:   store,
		validator: validator,
		metrics:   m,
	}
}

// ========================================
// CREATE
// ========================================

// Create check trùng tên (kể cả archived) → upload ảnh → insert
// Insert lỗi thì xoá ảnh vừa upload
func (s *brandService) Create(ctx context.Context, actor uuid.UUID, req brand.CreateBrandRequest, file storage.File) (*brand.Brand, error) {
	// 1. NAME UNIQUE
	if err := s.ensureNameAvailable(ctx, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	// 2. VALIDATE + UPLOAD IMAGE
	file, err := s.validator.Validate(file)
	if err != nil {
		return nil, err
	}
	image, err := s.storage.Upload(ctx, brand.Folder, file)
	s.metrics.RecordAsset("upload", err)
	if err != nil {
		return nil, fmt.Errorf("upload brand image: %w", err)
	}

	// 3. INSERT
	b := &brand.Brand{
		Name:      req.Name,
		Slug:      utils.GenerateSlug(req.Name),
		Slogan:    req.Slogan,
		Image:     image,
		CreatedBy: actor,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		s.cleanup(ctx, image)
		return nil, err
	}

	logger.Info("Brand created", map[string]interface{}{"brand_id": b.ID.String(), "name": b.Name})
	return b, nil
}

// ========================================
// READ
// ========================================

func (s *brandService) List(ctx context.Context, q softdelete.PageQuery, mode softdelete.Mode) (softdelete.Page[brand.Brand], error) {
	brands, total, err := s.repo.List(ctx, q, mode)
	if err != nil {
		return softdelete.Page[brand.Brand]{}, err
	}
	return softdelete.NewPage(brands, total, q), nil
}

func (s *brandService) FindOne(ctx context.Context, id uuid.UUID, mode softdelete.Mode) (*brand.Brand, error) {
	return s.repo.FindByID(ctx, id, mode)
}

// ========================================
// UPDATE
// ========================================

// Update - đổi name thì sinh lại slug
func (s *brandService) Update(ctx context.Context, actor, id uuid.UUID, req brand.UpdateBrandRequest) (*brand.Brand, error) {
	b, err := s.repo.FindByID(ctx, id, softdelete.Active)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != b.Name {
		if err := s.ensureNameAvailable(ctx, *req.Name, id); err != nil {
			return nil, err
		}
		b.Name = *req.Name
		b.Slug = utils.GenerateSlug(b.Name)
	}
	if req.Slogan != nil {
		b.Slogan = *req.Slogan
	}
	b.UpdatedBy = &actor

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateAttachment upload ảnh mới rồi swap, sau khi commit mới xoá ảnh cũ
func (s *brandService) UpdateAttachment(ctx context.Context, actor, id uuid.UUID, file storage.File) (*brand.Brand, error) {
	file, err := s.validator.Validate(file)
	if err != nil {
		return nil, err
	}

	image, err := s.storage.Upload(ctx, brand.Folder, file)
	s.metrics.RecordAsset("upload", err)
	if err != nil {
		return nil, fmt.Errorf("upload brand image: %w", err)
	}

	old, b, err := s.repo.UpdateImage(ctx, id, image, actor)
	if err != nil {
		s.cleanup(ctx, image)
		return nil, err
	}

	if old != "" && old != image {
		s.cleanup(ctx, old)
	}
	return b, nil
}

// ========================================
// FREEZE / RESTORE / DELETE
// ========================================

func (s *brandService) Freeze(ctx context.Context, actor, id uuid.UUID) error {
	return s.repo.Freeze(ctx, id, actor)
}

func (s *brandService) Restore(ctx context.Context, actor, id uuid.UUID) (*brand.Brand, error) {
	return s.repo.Restore(ctx, id, actor)
}

// Delete - hard delete brand đã freeze, xoá ảnh sau khi DB xoá xong
func (s *brandService) Delete(ctx context.Context, id uuid.UUID) error {
	b, err := s.repo.HardDelete(ctx, id)
	if err != nil {
		return err
	}
	s.cleanup(ctx, b.Image)
	return nil
}

// ========================================
// HELPERS
// ========================================

// ensureNameAvailable - tìm cả record archived, except là id của chính brand đang update
func (s *brandService) ensureNameAvailable(ctx context.Context, name string, except uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name, softdelete.All)
	if err != nil {
		if errors.Is(err, brand.ErrBrandNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == except {
		return nil
	}
	if existing.IsFrozen() {
		return brand.ErrDuplicatedArchived
	}
	return brand.ErrDuplicatedName
}

func (s *brandService) cleanup(ctx context.Context, keys ...string) {
	err := s.storage.DeleteMany(context.WithoutCancel(ctx), keys)
	s.metrics.RecordAsset("delete", err)
	if err != nil {
		logger.Error("Failed to delete brand assets", err)
	}
}
