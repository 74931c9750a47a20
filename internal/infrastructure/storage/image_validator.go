package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	"ecommerce-backend/internal/shared/apperror"
)

var (
	ErrInvalidFileFormat = apperror.New(apperror.KindValidation, "INVALID_FILE_FORMAT", "Invalid file format, only jpeg, png, gif and webp images are allowed")
	ErrFileTooLarge      = apperror.New(apperror.KindValidation, "FILE_TOO_LARGE", "File is too large")
	ErrEmptyFile         = apperror.New(apperror.KindValidation, "EMPTY_FILE", "File is empty")
)

// allowedImageTypes: mime → imaging format dùng khi re-encode, nil nếu không resize
var allowedImageTypes = map[string]*imaging.Format{
	"image/jpeg": formatPtr(imaging.JPEG),
	"image/png":  formatPtr(imaging.PNG),
	"image/gif":  nil, // giữ nguyên animation
	"image/webp": nil, // không có encoder webp
}

func formatPtr(f imaging.Format) *imaging.Format { return &f }

func tooLarge(filename string, maxBytes int64) error {
	if maxBytes >= 1<<20 {
		return ErrFileTooLarge.WithMessage("File %s exceeds %dMB", filename, maxBytes>>20)
	}
	return ErrFileTooLarge.WithMessage("File %s exceeds %dKB", filename, maxBytes>>10)
}

// ImageValidator sniff content type từ bytes, check size, downscale ảnh quá lớn
type ImageValidator struct {
	MaxBytes     int64
	MaxDimension int
}

func NewImageValidator(maxBytes int64, maxDimension int) *ImageValidator {
	return &ImageValidator{MaxBytes: maxBytes, MaxDimension: maxDimension}
}

// WithMaxBytes trả về validator có limit khác (VD: profile image 2MB)
func (v *ImageValidator) WithMaxBytes(maxBytes int64) *ImageValidator {
	cp := *v
	cp.MaxBytes = maxBytes
	return &cp
}

// Validate check file và trả về file đã chuẩn hoá (content type thật, có thể đã resize)
func (v *ImageValidator) Validate(file File) (File, error) {
	if len(file.Data) == 0 {
		return File{}, ErrEmptyFile
	}
	if v.MaxBytes > 0 && int64(len(file.Data)) > v.MaxBytes {
		return File{}, tooLarge(file.Filename, v.MaxBytes)
	}

	// Không tin Content-Type từ client
	mtype := mimetype.Detect(file.Data)
	format, ok := allowedImageTypes[mtype.String()]
	if !ok {
		return File{}, ErrInvalidFileFormat.WithDetails(map[string]string{
			"file":     file.Filename,
			"detected": mtype.String(),
		})
	}
	file.ContentType = mtype.String()

	if format == nil || v.MaxDimension <= 0 {
		return file, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil {
		return File{}, ErrInvalidFileFormat.Wrap(err)
	}
	if cfg.Width <= v.MaxDimension && cfg.Height <= v.MaxDimension {
		return file, nil
	}

	resized, err := v.downscale(file.Data, *format)
	if err != nil {
		return File{}, err
	}
	file.Data = resized
	return file, nil
}

// ValidateMany validate từng file, dừng ở file lỗi đầu tiên
func (v *ImageValidator) ValidateMany(files []File) ([]File, error) {
	out := make([]File, 0, len(files))
	for _, f := range files {
		checked, err := v.Validate(f)
		if err != nil {
			return nil, err
		}
		out = append(out, checked)
	}
	return out, nil
}

func (v *ImageValidator) downscale(data []byte, format imaging.Format) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrInvalidFileFormat.Wrap(err)
	}

	fitted := imaging.Fit(img, v.MaxDimension, v.MaxDimension, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, fitted, format, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("cannot encode resized image: %w", err)
	}
	return buf.Bytes(), nil
}
