package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9-]+`)
	multipleHyphen = regexp.MustCompile(`-+`)
)

// GenerateSlug tạo slug deterministic từ name
// "Nguyễn Nhật Ánh" → "nguyen-nhat-anh", "Café & Co." → "cafe-co"
func GenerateSlug(input string) string {
	// Step 1: Bỏ dấu
	ascii := RemoveDiacritics(input)

	// Step 2: Lowercase + trim
	lower := strings.ToLower(strings.TrimSpace(ascii))

	// Step 3: Mọi whitespace → hyphen
	hyphenated := strings.Join(strings.Fields(lower), "-")

	// Step 4: Chỉ giữ a-z, 0-9, hyphen
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")

	// Step 5: Gộp hyphen liên tiếp và trim 2 đầu
	normalized := multipleHyphen.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}

// RemoveDiacritics bỏ dấu bằng cách tách ký tự (NFD) rồi xoá các combining mark
// đ/Đ không có dạng decomposed nên phải map tay
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, input)
	if err != nil {
		result = input
	}

	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(result)
}
