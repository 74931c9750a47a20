package storagetest

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"ecommerce-backend/internal/infrastructure/storage"
)

// PNG encode một ảnh w×h màu đơn
func PNG(tb testing.TB, w, h int) []byte {
	tb.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		tb.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// ImageFile - file PNG 8×8 hợp lệ
func ImageFile(tb testing.TB, name string) storage.File {
	tb.Helper()
	return storage.File{Filename: name, ContentType: "image/png", Data: PNG(tb, 8, 8)}
}

// ImageFiles - n file PNG hợp lệ
func ImageFiles(tb testing.TB, n int) []storage.File {
	tb.Helper()
	files := make([]storage.File, 0, n)
	for i := 0; i < n; i++ {
		files = append(files, ImageFile(tb, "image.png"))
	}
	return files
}
