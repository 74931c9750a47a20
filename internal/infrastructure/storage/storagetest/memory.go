// Package storagetest cung cấp Storage in-memory cho unit test của các service
package storagetest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"ecommerce-backend/internal/infrastructure/storage"
)

// Memory - Storage lưu object trong map
type Memory struct {
	mu      sync.Mutex
	AppName string
	Objects map[string]storage.File

	// FailUpload khiến mọi Upload trả về lỗi
	FailUpload bool
	// Deleted ghi lại các key đã bị xoá theo thứ tự
	Deleted []string
}

var _ storage.Storage = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{AppName: "test", Objects: map[string]storage.File{}}
}

var ErrUploadFailed = errors.New("upload failed")

func (m *Memory) Upload(_ context.Context, folder string, file storage.File) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailUpload {
		return "", ErrUploadFailed
	}
	key := storage.BuildKey(m.AppName, folder, file.Filename)
	m.Objects[key] = file
	return key, nil
}

func (m *Memory) UploadMany(ctx context.Context, folder string, files []storage.File) ([]string, error) {
	keys := make([]string, 0, len(files))
	for _, f := range files {
		key, err := m.Upload(ctx, folder, f)
		if err != nil {
			_ = m.DeleteMany(ctx, keys)
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (m *Memory) Get(_ context.Context, key string) (*storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.Objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return &storage.Object{
		Body:        io.NopCloser(bytes.NewReader(f.Data)),
		ContentType: f.ContentType,
		Size:        int64(len(f.Data)),
	}, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Objects, key)
	m.Deleted = append(m.Deleted, key)
	return nil
}

func (m *Memory) DeleteMany(ctx context.Context, keys []string) error {
	for _, k := range keys {
		_ = m.Delete(ctx, k)
	}
	return nil
}

func (m *Memory) DeleteByPrefix(ctx context.Context, folder string) error {
	keys, _ := m.List(ctx, folder)
	return m.DeleteMany(ctx, keys)
}

func (m *Memory) List(_ context.Context, folder string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := storage.FolderPath(m.AppName, folder) + "/"
	var keys []string
	for k := range m.Objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) PresignGet(_ context.Context, key string, opts storage.PresignGetOptions) (string, error) {
	u := "https://storage.test/" + key
	if opts.Download {
		u += "?download=true"
	}
	return u, nil
}

func (m *Memory) PresignPut(_ context.Context, folder, filename, _ string) (string, string, error) {
	key := storage.BuildPresignedKey(m.AppName, folder, filename)
	return "https://storage.test/" + key + "?X-Amz-Signature=test", key, nil
}

// Has kiểm tra key còn tồn tại
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Objects[key]
	return ok
}

// Count - số object hiện có
func (m *Memory) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}
