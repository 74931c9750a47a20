// Package brandtest cung cấp brand.Repository in-memory cho unit test
package brandtest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ecommerce-backend/internal/domains/brand"
	"ecommerce-backend/internal/shared/softdelete"
)

type Memory struct {
	mu     sync.Mutex
	Brands map[uuid.UUID]*brand.Brand
	// InUse giả lập FK products → brands
	InUse map[uuid.UUID]bool
	// FailCreate khiến Create trả về lỗi
	FailCreate error
}

var _ brand.Repository = (*Memory)(nil)

func NewMemory(brands ...*brand.Brand) *Memory {
	m := &Memory{Brands: map[uuid.UUID]*brand.Brand{}, InUse: map[uuid.UUID]bool{}}
	for _, b := range brands {
		m.Brands[b.ID] = b
	}
	return m
}

func matches(b *brand.Brand, mode softdelete.Mode) bool {
	switch mode {
	case softdelete.All:
		return true
	case softdelete.Archived:
		return b.FreezedAt != nil
	default:
		return b.FreezedAt == nil
	}
}

func clone(b *brand.Brand) *brand.Brand {
	cp := *b
	return &cp
}

func (m *Memory) Create(_ context.Context, b *brand.Brand) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCreate != nil {
		return m.FailCreate
	}
	for _, existing := range m.Brands {
		if existing.Name == b.Name {
			return brand.ErrDuplicatedName
		}
	}
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	m.Brands[b.ID] = clone(b)
	return nil
}

func (m *Memory) FindByID(_ context.Context, id uuid.UUID, mode softdelete.Mode) (*brand.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.Brands[id]
	if !ok || !matches(b, mode) {
		return nil, brand.ErrBrandNotFound
	}
	return clone(b), nil
}

func (m *Memory) FindByName(_ context.Context, name string, mode softdelete.Mode) (*brand.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.Brands {
		if b.Name == name && matches(b, mode) {
			return clone(b), nil
		}
	}
	return nil, brand.ErrBrandNotFound
}

func (m *Memory) List(_ context.Context, q softdelete.PageQuery, mode softdelete.Mode) ([]brand.Brand, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(q.Search))
	var all []brand.Brand
	for _, b := range m.Brands {
		if !matches(b, mode) {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(b.Name+" "+b.Slug+" "+b.Slogan), term) {
			continue
		}
		all = append(all, *b)
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

func (m *Memory) CountByIDs(_ context.Context, ids []uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, id := range ids {
		if b, ok := m.Brands[id]; ok && b.FreezedAt == nil {
			n++
		}
	}
	return n, nil
}

func (m *Memory) Update(_ context.Context, b *brand.Brand) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.Brands[b.ID]
	if !ok || existing.FreezedAt != nil {
		return brand.ErrBrandNotFound
	}
	b.UpdatedAt = time.Now()
	m.Brands[b.ID] = clone(b)
	return nil
}

func (m *Memory) UpdateImage(_ context.Context, id uuid.UUID, image string, updatedBy uuid.UUID) (string, *brand.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.Brands[id]
	if !ok || b.FreezedAt != nil {
		return "", nil, brand.ErrBrandNotFound
	}
	old := b.Image
	b.Image = image
	b.UpdatedBy = &updatedBy
	return old, clone(b), nil
}

func (m *Memory) Freeze(_ context.Context, id, updatedBy uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.Brands[id]
	if !ok || b.FreezedAt != nil {
		return brand.ErrBrandNotFound
	}
	now := time.Now()
	b.FreezedAt = &now
	b.RestoredAt = nil
	b.UpdatedBy = &updatedBy
	return nil
}

func (m *Memory) Restore(_ context.Context, id, updatedBy uuid.UUID) (*brand.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.Brands[id]
	if !ok || b.FreezedAt == nil {
		return nil, brand.ErrBrandNotFound
	}
	now := time.Now()
	b.FreezedAt = nil
	b.RestoredAt = &now
	b.UpdatedBy = &updatedBy
	return clone(b), nil
}

func (m *Memory) HardDelete(_ context.Context, id uuid.UUID) (*brand.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.Brands[id]
	if !ok || b.FreezedAt == nil {
		return nil, brand.ErrBrandNotFound
	}
	if m.InUse[id] {
		return nil, brand.ErrBrandInUse
	}
	delete(m.Brands, id)
	return b, nil
}
