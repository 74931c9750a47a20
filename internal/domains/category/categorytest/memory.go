// Package categorytest cung cấp category.Repository in-memory cho unit test
package categorytest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ecommerce-backend/internal/domains/category"
	"ecommerce-backend/internal/shared/softdelete"
)

type Memory struct {
	mu         sync.Mutex
	Categories map[uuid.UUID]*category.Category
	// InUse giả lập FK products → categories
	InUse      map[uuid.UUID]bool
	FailCreate error
}

var _ category.Repository = (*Memory)(nil)

func NewMemory(categories ...*category.Category) *Memory {
	m := &Memory{Categories: map[uuid.UUID]*category.Category{}, InUse: map[uuid.UUID]bool{}}
	for _, c := range categories {
		m.Categories[c.ID] = c
	}
	return m
}

func visible(c *category.Category, mode softdelete.Mode) bool {
	switch mode {
	case softdelete.All:
		return true
	case softdelete.Archived:
		return c.FreezedAt != nil
	default:
		return c.FreezedAt == nil
	}
}

func clone(c *category.Category) *category.Category {
	cp := *c
	cp.BrandIDs = append([]uuid.UUID{}, c.BrandIDs...)
	return &cp
}

func (m *Memory) Create(_ context.Context, c *category.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCreate != nil {
		return m.FailCreate
	}
	for _, existing := range m.Categories {
		if existing.Name == c.Name {
			return category.ErrDuplicatedName
		}
	}
	c.ID = uuid.New()
	if c.AssetFolderID == uuid.Nil {
		c.AssetFolderID = uuid.New()
	}
	if c.BrandIDs == nil {
		c.BrandIDs = []uuid.UUID{}
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.Categories[c.ID] = clone(c)
	return nil
}

func (m *Memory) FindByID(_ context.Context, id uuid.UUID, mode softdelete.Mode) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.Categories[id]
	if !ok || !visible(c, mode) {
		return nil, category.ErrCategoryNotFound
	}
	return clone(c), nil
}

func (m *Memory) FindByName(_ context.Context, name string, mode softdelete.Mode) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.Categories {
		if c.Name == name && visible(c, mode) {
			return clone(c), nil
		}
	}
	return nil, category.ErrCategoryNotFound
}

func (m *Memory) List(_ context.Context, q softdelete.PageQuery, mode softdelete.Mode) ([]category.Category, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(q.Search))
	var all []category.Category
	for _, c := range m.Categories {
		if !visible(c, mode) {
			continue
		}
		haystack := c.Name + " " + c.Slug
		if c.Description != nil {
			haystack += " " + *c.Description
		}
		if term != "" && !strings.Contains(strings.ToLower(haystack), term) {
			continue
		}
		all = append(all, *clone(c))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := int64(len(all))
	if q.IsAll() {
		return all, total, nil
	}
	start := min(q.Offset(), len(all))
	end := min(start+q.Limit(), len(all))
	return all[start:end], total, nil
}

func (m *Memory) Update(_ context.Context, c *category.Category, replaceBrands bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.Categories[c.ID]
	if !ok || existing.FreezedAt != nil {
		return category.ErrCategoryNotFound
	}
	if !replaceBrands {
		c.BrandIDs = append([]uuid.UUID(nil), existing.BrandIDs...)
	}
	c.UpdatedAt = time.Now()
	m.Categories[c.ID] = clone(c)
	return nil
}

func (m *Memory) UpdateImage(_ context.Context, id uuid.UUID, image string, updatedBy uuid.UUID) (string, *category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.Categories[id]
	if !ok || c.FreezedAt != nil {
		return "", nil, category.ErrCategoryNotFound
	}
	old := c.Image
	c.Image = image
	c.UpdatedBy = &updatedBy
	return old, clone(c), nil
}

func (m *Memory) Freeze(_ context.Context, id, updatedBy uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.Categories[id]
	if !ok || c.FreezedAt != nil {
		return category.ErrCategoryNotFound
	}
	now := time.Now()
	c.FreezedAt = &now
	c.RestoredAt = nil
	c.UpdatedBy = &updatedBy
	return nil
}

func (m *Memory) Restore(_ context.Context, id, updatedBy uuid.UUID) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.Categories[id]
	if !ok || c.FreezedAt == nil {
		return nil, category.ErrCategoryNotFound
	}
	now := time.Now()
	c.FreezedAt = nil
	c.RestoredAt = &now
	c.UpdatedBy = &updatedBy
	return clone(c), nil
}

func (m *Memory) HardDelete(_ context.Context, id uuid.UUID) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.Categories[id]
	if !ok || c.FreezedAt == nil {
		return nil, category.ErrCategoryNotFound
	}
	if m.InUse[id] {
		return nil, category.ErrCategoryInUse
	}
	delete(m.Categories, id)
	return c, nil
}
