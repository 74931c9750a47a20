package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/internal/infrastructure/metrics"
	"ecommerce-backend/internal/infrastructure/storage"
	"ecommerce-backend/pkg/logger"
)

// BcryptCost dùng chung cho password và OTP
const BcryptCost = 12

// userService implement user.Service
type userService struct {
	repo    user.Repository
	storage storage.Storage
	profile *storage.ImageValidator // limit riêng cho profile image
	covers  *storage.ImageValidator
	metrics *metrics.Metrics
	cost    int
	now     func() time.Time
}

// NewUserService - profileMaxBytes áp dụng cho profile image, covers dùng limit mặc định của validator
func NewUserService(
	repo user.Repository,
	store storage.Storage,
	validator *storage.ImageValidator,
	profileMaxBytes int64,
	m *metrics.Metrics,
) user.Service {
	return &userService{
		repo:    repo,
		storage: store,
		profile: validator.WithMaxBytes(profileMaxBytes),
		covers:  validator,
		metrics: m,
		cost:    BcryptCost,
		now:     time.Now,
	}
}

// FolderFor - user/{id}
func FolderFor(u *user.User) string {
	return "user/" + u.ID.String()
}

func (s *userService) GetProfile(_ context.Context, u *user.User) *user.ProfileResponse {
	return u.ToProfile()
}

// UpdateProfileImage upload ảnh mới, update DB, sau khi commit mới xoá ảnh cũ
func (s *userService) UpdateProfileImage(ctx context.Context, u *user.User, file storage.File) (*user.ProfileResponse, error) {
	// 1. VALIDATE IMAGE (≤ 2MB)
	file, err := s.profile.Validate(file)
	if err != nil {
		return nil, err
	}

	// 2. UPLOAD
	key, err := s.storage.Upload(ctx, FolderFor(u), file)
	s.metrics.RecordAsset("upload", err)
	if err != nil {
		return nil, fmt.Errorf("upload profile image: %w", err)
	}

	// 3. PERSIST - fail thì xoá ảnh vừa upload
	old, err := s.repo.UpdateProfileImage(ctx, u.ID, key)
	if err != nil {
		s.cleanup(ctx, key)
		return nil, err
	}

	// 4. DELETE OLD IMAGE
	if old != nil && *old != "" && *old != key {
		s.cleanup(ctx, *old)
	}

	u.ProfileImage = &key
	return u.ToProfile(), nil
}

// UpdateCoverImages thay toàn bộ cover images (≤ 5)
func (s *userService) UpdateCoverImages(ctx context.Context, u *user.User, files []storage.File) (*user.ProfileResponse, error) {
	if len(files) == 0 {
		return nil, user.ErrMissingImage
	}
	if len(files) > user.MaxCoverImages {
		return nil, user.ErrTooManyCovers
	}

	files, err := s.covers.ValidateMany(files)
	if err != nil {
		return nil, err
	}

	keys, err := s.storage.UploadMany(ctx, FolderFor(u)+"/cover", files)
	s.metrics.RecordAsset("upload", err)
	if err != nil {
		return nil, fmt.Errorf("upload cover images: %w", err)
	}

	old, err := s.repo.UpdateCoverImages(ctx, u.ID, keys)
	if err != nil {
		s.cleanup(ctx, keys...)
		return nil, err
	}

	if len(old) > 0 {
		s.cleanup(ctx, old...)
	}

	u.CoverImages = keys
	return u.ToProfile(), nil
}

// PresignProfileImage cấp url PUT trực tiếp lên bucket
func (s *userService) PresignProfileImage(ctx context.Context, u *user.User, req user.PresignedUploadRequest) (*user.PresignedUploadResponse, error) {
	url, key, err := s.storage.PresignPut(ctx, FolderFor(u), req.OriginalName, req.ContentType)
	s.metrics.RecordAsset("presign", err)
	if err != nil {
		return nil, fmt.Errorf("presign profile image: %w", err)
	}
	return &user.PresignedUploadResponse{URL: url, Key: key}, nil
}

// ChangePassword - đổi password và set change_credentials_time
// Mọi token phát hành trước thời điểm này bị từ chối
func (s *userService) ChangePassword(ctx context.Context, u *user.User, req user.ChangePasswordRequest) error {
	if !u.HasPassword() {
		return user.ErrPasswordNotSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(req.OldPassword)); err != nil {
		return user.ErrInvalidOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, u.ID, string(hash), s.now()); err != nil {
		return err
	}

	logger.Info("Password changed", map[string]interface{}{"user_id": u.ID.String()})
	return nil
}

// cleanup xoá asset, lỗi chỉ log vì request chính đã xong
func (s *userService) cleanup(ctx context.Context, keys ...string) {
	err := s.storage.DeleteMany(context.WithoutCancel(ctx), keys)
	s.metrics.RecordAsset("delete", err)
	if err != nil {
		logger.Error("Failed to delete user assets", err)
	}
}
