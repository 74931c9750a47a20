// Package carttest cung cấp cart.Repository in-memory cho unit test
package carttest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"ecommerce-backend/internal/domains/cart"
)

type Memory struct {
	mu sync.Mutex
	// Carts theo owner
	Carts map[uuid.UUID]*cart.Cart
}

var _ cart.Repository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{Carts: map[uuid.UUID]*cart.Cart{}}
}

func clone(c *cart.Cart) *cart.Cart {
	cp := *c
	cp.Items = append([]cart.Item{}, c.Items...)
	return &cp
}

func (m *Memory) FindByOwner(_ context.Context, userID uuid.UUID) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.Carts[userID]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	return clone(c), nil
}

func (m *Memory) UpsertItem(_ context.Context, userID uuid.UUID, item cart.Item) (*cart.Cart, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	c, ok := m.Carts[userID]
	if !ok {
		c = &cart.Cart{ID: uuid.New(), CreatedBy: userID, Items: []cart.Item{}, CreatedAt: now}
		m.Carts[userID] = c
	}
	c.UpdatedAt = now

	replaced := false
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity = item.Quantity
			replaced = true
		}
	}
	if !replaced {
		c.Items = append(c.Items, cart.Item{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return clone(c), !ok, nil
}

func (m *Memory) RemoveItems(_ context.Context, userID uuid.UUID, productIDs []uuid.UUID) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.Carts[userID]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	drop := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		drop[id] = true
	}
	kept := c.Items[:0]
	for _, it := range c.Items {
		if !drop[it.ProductID] {
			kept = append(kept, it)
		}
	}
	c.Items = kept
	c.UpdatedAt = time.Now()
	return clone(c), nil
}

func (m *Memory) Delete(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Carts[userID]; !ok {
		return cart.ErrCartNotFound
	}
	delete(m.Carts, userID)
	return nil
}
