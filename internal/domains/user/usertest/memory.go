// Package usertest cung cấp user.Repository in-memory cho unit test
package usertest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ecommerce-backend/internal/domains/user"
)

type Memory struct {
	mu    sync.Mutex
	Users map[uuid.UUID]*user.User
}

var _ user.Repository = (*Memory)(nil)

func NewMemory(users ...*user.User) *Memory {
	m := &Memory{Users: map[uuid.UUID]*user.User{}}
	for _, u := range users {
		m.Users[u.ID] = u
	}
	return m
}

func clone(u *user.User) *user.User {
	cp := *u
	cp.CoverImages = append([]string(nil), u.CoverImages...)
	return &cp
}

func (m *Memory) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrEmailExists
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.Users[u.ID] = clone(u)
	return nil
}

func (m *Memory) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.Users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return clone(u), nil
}

func (m *Memory) FindByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.Users {
		if strings.EqualFold(u.Email, email) {
			return clone(u), nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *Memory) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

func (m *Memory) MarkConfirmed(_ context.Context, id uuid.UUID) error {
	return m.update(id, func(u *user.User) {
		now := time.Now()
		u.ConfirmedAt = &now
	})
}

func (m *Memory) UpdatePassword(_ context.Context, id uuid.UUID, hash string, changedAt time.Time) error {
	return m.update(id, func(u *user.User) {
		u.Password = &hash
		u.ChangeCredentialsTime = &changedAt
	})
}

func (m *Memory) UpdateProfileImage(_ context.Context, id uuid.UUID, key string) (*string, error) {
	var old *string
	err := m.update(id, func(u *user.User) {
		old = u.ProfileImage
		u.ProfileImage = &key
	})
	return old, err
}

func (m *Memory) UpdateCoverImages(_ context.Context, id uuid.UUID, keys []string) ([]string, error) {
	var old []string
	err := m.update(id, func(u *user.User) {
		old = u.CoverImages
		u.CoverImages = append([]string(nil), keys...)
	})
	return old, err
}

// Get trả về bản lưu hiện tại (nil nếu không có)
func (m *Memory) Get(id uuid.UUID) *user.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[id]; ok {
		return clone(u)
	}
	return nil
}

func (m *Memory) update(id uuid.UUID, fn func(*user.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.Users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now()
	return nil
}
