package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/shared/apperror"
)

// ErrObjectNotFound - key không tồn tại trong bucket
var ErrObjectNotFound = apperror.New(apperror.KindNotFound, "ASSET_NOT_FOUND", "Fail to fetch this asset")

// MinIOStorage implement Storage trên bất kỳ endpoint S3-compatible nào
type MinIOStorage struct {
	client         *minio.Client
	bucket         string
	appName        string
	presignExpires time.Duration
}

var _ Storage = (*MinIOStorage)(nil)

// NewMinIOStorage khởi tạo client và tạo bucket nếu chưa có
func NewMinIOStorage(ctx context.Context, appName string, cfg config.StorageConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("[STORAGE] Bucket created")
	}

	return &MinIOStorage{
		client:         client,
		bucket:         cfg.Bucket,
		appName:        appName,
		presignExpires: cfg.PresignedExpires,
	}, nil
}

func (s *MinIOStorage) Upload(ctx context.Context, folder string, file File) (string, error) {
	key := BuildKey(s.appName, folder, file.Filename)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(file.Data), int64(len(file.Data)),
		minio.PutObjectOptions{ContentType: file.ContentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", file.Filename, err)
	}

	return key, nil
}

func (s *MinIOStorage) UploadMany(ctx context.Context, folder string, files []File) ([]string, error) {
	keys := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			key, err := s.Upload(gctx, folder, f)
			if err != nil {
				return err
			}
			keys[i] = key
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uploaded := make([]string, 0, len(keys))
		for _, k := range keys {
			if k != "" {
				uploaded = append(uploaded, k)
			}
		}
		// ctx gốc có thể đã cancel, cleanup bằng context riêng
		if cleanupErr := s.DeleteMany(context.WithoutCancel(ctx), uploaded); cleanupErr != nil {
			log.Warn().Err(cleanupErr).Strs("keys", uploaded).Msg("[STORAGE] Cleanup after failed upload failed")
		}
		return nil, err
	}

	return keys, nil
}

func (s *MinIOStorage) Get(ctx context.Context, key string) (*Object, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}

	// GetObject lazy, Stat mới thật sự gọi server
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound.Wrap(err)
		}
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	return &Object{Body: obj, ContentType: info.ContentType, Size: info.Size}, nil
}

func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// DeleteMany xoá batch qua RemoveObjects
func (s *MinIOStorage) DeleteMany(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	for rmErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rmErr.Err != nil {
			return fmt.Errorf("failed to remove %s: %w", rmErr.ObjectName, rmErr.Err)
		}
	}
	return nil
}

func (s *MinIOStorage) DeleteByPrefix(ctx context.Context, folder string) error {
	keys, err := s.List(ctx, folder)
	if err != nil {
		return err
	}
	return s.DeleteMany(ctx, keys)
}

func (s *MinIOStorage) List(ctx context.Context, folder string) ([]string, error) {
	prefix := FolderPath(s.appName, folder) + "/"

	var keys []string
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		keys = append(keys, object.Key)
	}
	return keys, nil
}

func (s *MinIOStorage) PresignGet(ctx context.Context, key string, opts PresignGetOptions) (string, error) {
	params := url.Values{}
	if opts.Download {
		params.Set("response-content-disposition", AttachmentDisposition(key, opts.Filename))
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.presignExpires, params)
	if err != nil {
		return "", fmt.Errorf("failed to presign get: %w", err)
	}
	return u.String(), nil
}

func (s *MinIOStorage) PresignPut(ctx context.Context, folder, filename, contentType string) (string, string, error) {
	key := BuildPresignedKey(s.appName, folder, filename)

	// Content-Type được ký vào URL, client phải gửi đúng header này
	headers := make(map[string][]string)
	if contentType != "" {
		headers["Content-Type"] = []string{contentType}
	}

	u, err := s.client.PresignHeader(ctx, "PUT", s.bucket, key, s.presignExpires, nil, headers)
	if err != nil {
		return "", "", fmt.Errorf("failed to presign put: %w", err)
	}
	return u.String(), key, nil
}

// HealthCheck - bucket còn truy cập được
func (s *MinIOStorage) HealthCheck(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("storage unreachable: %w", err)
	}
	return nil
}
