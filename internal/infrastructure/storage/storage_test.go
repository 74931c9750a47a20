package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-backend/internal/shared/apperror"
)

func TestBuildKey(t *testing.T) {
	key := BuildKey("shop", "/Brand/", "my logo.png")

	assert.True(t, strings.HasPrefix(key, "shop/Brand/"), key)
	assert.True(t, strings.HasSuffix(key, "_my_logo.png"), key)

	pre := BuildPresignedKey("shop", "user/42", "../../etc/passwd")
	assert.True(t, strings.HasPrefix(pre, "shop/user/42/"), pre)
	assert.True(t, strings.HasSuffix(pre, "_pre_passwd"), pre)
}

func TestFolderPath(t *testing.T) {
	assert.Equal(t, "shop/Category/abc/Product/def", FolderPath("shop", "Category/abc/Product/def/"))
	assert.Equal(t, "shop", FolderPath("shop", ""))
}

func TestAttachmentDisposition(t *testing.T) {
	assert.Equal(t, `attachment; filename="a.png"`, AttachmentDisposition("shop/x/1_a.png", "a.png"))
	assert.Equal(t, `attachment; filename="1_a.png"`, AttachmentDisposition("shop/x/1_a.png", ""))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestImageValidator(t *testing.T) {
	v := NewImageValidator(5*1024*1024, 64)

	t.Run("accepts png and fixes content type", func(t *testing.T) {
		got, err := v.Validate(File{Filename: "a.png", ContentType: "application/octet-stream", Data: pngBytes(t, 10, 10)})
		require.NoError(t, err)
		assert.Equal(t, "image/png", got.ContentType)
	})

	t.Run("rejects non image", func(t *testing.T) {
		_, err := v.Validate(File{Filename: "a.png", ContentType: "image/png", Data: []byte("%PDF-1.4 not an image")})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidFileFormat)
		assert.Equal(t, 400, apperror.From(err).Status())
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := v.Validate(File{Filename: "a.png"})
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("rejects too large", func(t *testing.T) {
		_, err := v.WithMaxBytes(10).Validate(File{Filename: "a.png", Data: pngBytes(t, 10, 10)})
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("downscales oversize", func(t *testing.T) {
		got, err := v.Validate(File{Filename: "big.png", Data: pngBytes(t, 256, 128)})
		require.NoError(t, err)

		cfg, _, err := image.DecodeConfig(bytes.NewReader(got.Data))
		require.NoError(t, err)
		assert.Equal(t, 64, cfg.Width)
		assert.Equal(t, 32, cfg.Height)
	})

	t.Run("validate many stops at first error", func(t *testing.T) {
		_, err := v.ValidateMany([]File{
			{Filename: "ok.png", Data: pngBytes(t, 4, 4)},
			{Filename: "bad.txt", Data: []byte("hello")},
		})
		assert.ErrorIs(t, err, ErrInvalidFileFormat)
	})
}

func fileHeader(t *testing.T, data []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("attachment", "a.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(body, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["attachment"][0]
}

func TestReadFileHeader(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 4096)

	t.Run("within limit", func(t *testing.T) {
		file, err := ReadFileHeader(fileHeader(t, data), 4096)
		require.NoError(t, err)
		assert.Equal(t, "a.png", file.Filename)
		assert.Len(t, file.Data, 4096)
	})

	t.Run("over limit", func(t *testing.T) {
		_, err := ReadFileHeader(fileHeader(t, data), 1024)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFileTooLarge)
		assert.Equal(t, "FILE_TOO_LARGE", apperror.From(err).Code)
		assert.Contains(t, err.Error(), "1KB")
	})

	t.Run("no limit", func(t *testing.T) {
		file, err := ReadFileHeader(fileHeader(t, data), 0)
		require.NoError(t, err)
		assert.Len(t, file.Data, 4096)
	})
}
