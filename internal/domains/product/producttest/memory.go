// Package producttest cung cấp product.Repository in-memory cho unit test
package producttest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ecommerce-backend/internal/domains/product"
	"ecommerce-backend/internal/shared/softdelete"
	"ecommerce-backend/internal/shared/utils"
)

type Memory struct {
	mu       sync.Mutex
	Products map[uuid.UUID]*product.Product

	FailCreate       error
	FailUpdateImages error
}

var _ product.Repository = (*Memory)(nil)

func NewMemory(products ...*product.Product) *Memory {
	m := &Memory{Products: map[uuid.UUID]*product.Product{}}
	for _, p := range products {
		m.Products[p.ID] = p
	}
	return m
}

func visible(p *product.Product, mode softdelete.Mode) bool {
	switch mode {
	case softdelete.All:
		return true
	case softdelete.Archived:
		return p.FreezedAt != nil
	default:
		return p.FreezedAt == nil
	}
}

func clone(p *product.Product) *product.Product {
	cp := *p
	cp.Images = append([]string{}, p.Images...)
	return &cp
}

func (m *Memory) Create(_ context.Context, p *product.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCreate != nil {
		return m.FailCreate
	}
	for _, existing := range m.Products {
		if existing.Name == p.Name {
			return product.ErrDuplicatedName
		}
	}
	p.ID = uuid.New()
	if p.Images == nil {
		p.Images = []string{}
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.Products[p.ID] = clone(p)
	return nil
}

func (m *Memory) FindByID(_ context.Context, id uuid.UUID, mode softdelete.Mode) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.Products[id]
	if !ok || !visible(p, mode) {
		return nil, product.ErrProductNotFound
	}
	return clone(p), nil
}

func (m *Memory) FindByName(_ context.Context, name string, mode softdelete.Mode) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.Products {
		if p.Name == name && visible(p, mode) {
			return clone(p), nil
		}
	}
	return nil, product.ErrProductNotFound
}

func (m *Memory) FindManyByIDs(_ context.Context, ids []uuid.UUID) ([]product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.Products[id]; ok && p.FreezedAt == nil {
			out = append(out, *clone(p))
		}
	}
	return out, nil
}

func (m *Memory) List(_ context.Context, q softdelete.PageQuery, mode softdelete.Mode) ([]product.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(q.Search))
	var all []product.Product
	for _, p := range m.Products {
		if !visible(p, mode) {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Slug), term) {
			continue
		}
		all = append(all, *clone(p))
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

func (m *Memory) Update(_ context.Context, p *product.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.Products[p.ID]
	if !ok || existing.FreezedAt != nil {
		return product.ErrProductNotFound
	}
	p.UpdatedAt = time.Now()
	m.Products[p.ID] = clone(p)
	return nil
}

func (m *Memory) UpdateImages(_ context.Context, id uuid.UUID, remove, add []string, updatedBy uuid.UUID) ([]string, *product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailUpdateImages != nil {
		return nil, nil, m.FailUpdateImages
	}
	p, ok := m.Products[id]
	if !ok || p.FreezedAt != nil {
		return nil, nil, product.ErrProductNotFound
	}
	merged, removed := utils.MergeKeys(p.Images, remove, add)
	if len(merged) > product.MaxImages {
		return nil, nil, product.ErrTooManyImages
	}
	p.Images = merged
	p.UpdatedBy = &updatedBy
	return removed, clone(p), nil
}

// SetStock chỉnh tồn kho trực tiếp cho test cart
func (m *Memory) SetStock(id uuid.UUID, stock int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Products[id]; ok {
		p.Stock = stock
	}
}

func (m *Memory) Freeze(_ context.Context, id, updatedBy uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.Products[id]
	if !ok || p.FreezedAt != nil {
		return product.ErrProductNotFound
	}
	now := time.Now()
	p.FreezedAt = &now
	p.RestoredAt = nil
	p.UpdatedBy = &updatedBy
	return nil
}

func (m *Memory) Restore(_ context.Context, id, updatedBy uuid.UUID) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.Products[id]
	if !ok || p.FreezedAt == nil {
		return nil, product.ErrProductNotFound
	}
	now := time.Now()
	p.FreezedAt = nil
	p.RestoredAt = &now
	p.UpdatedBy = &updatedBy
	return clone(p), nil
}

func (m *Memory) HardDelete(_ context.Context, id uuid.UUID) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.Products[id]
	if !ok || p.FreezedAt == nil {
		return nil, product.ErrProductNotFound
	}
	delete(m.Products, id)
	return p, nil
}
