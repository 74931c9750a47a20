package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Apple", "apple"},
		{"spaces", "  Samsung   Galaxy S24 ", "samsung-galaxy-s24"},
		{"vietnamese", "Nguyễn Nhật Ánh", "nguyen-nhat-anh"},
		{"d stroke", "Đồ Gia Dụng", "do-gia-dung"},
		{"accents", "Café Crème", "cafe-creme"},
		{"special chars", "Tom & Jerry!!", "tom-jerry"},
		{"hyphens", "--a---b--", "a-b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestGenerateSlug_Idempotent(t *testing.T) {
	for _, name := range []string{"Nike Air Max 90", "Điện thoại", "x"} {
		once := GenerateSlug(name)
		assert.Equal(t, once, GenerateSlug(once))
		assert.Equal(t, once, GenerateSlug(name))
	}
}
