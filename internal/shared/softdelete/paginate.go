package softdelete

import "fmt"

// DefaultPageSize khi size không hợp lệ
const DefaultPageSize = 5

// PageQuery - query string ?page&size&search&sort
// Page = 0 nghĩa là lấy tất cả
type PageQuery struct {
	Page   int    `form:"page"`
	Size   int    `form:"size"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
}

// IsAll - không phân trang
func (q PageQuery) IsAll() bool {
	return q.Page < 1
}

// Limit trả về size đã chuẩn hoá
func (q PageQuery) Limit() int {
	if q.Size < 1 {
		return DefaultPageSize
	}
	return q.Size
}

func (q PageQuery) Offset() int {
	if q.IsAll() {
		return 0
	}
	return (q.Page - 1) * q.Limit()
}

// Paginate trả về "LIMIT $n OFFSET $m" (đăng ký args vào filter), rỗng nếu lấy tất cả
func (f *Filter) Paginate(q PageQuery) string {
	if q.IsAll() {
		return ""
	}
	return fmt.Sprintf("LIMIT %s OFFSET %s", f.Arg(q.Limit()), f.Arg(q.Offset()))
}

// Page - kết quả phân trang, các field meta bị bỏ khi lấy tất cả
type Page[T any] struct {
	DocsCount   *int64 `json:"docsCount,omitempty"`
	Limit       *int   `json:"limit,omitempty"`
	Pages       *int   `json:"pages,omitempty"`
	CurrentPage *int   `json:"currentPage,omitempty"`
	Result      []T    `json:"result"`
}

// NewPage build Page từ kết quả query và tổng số record
func NewPage[T any](result []T, total int64, q PageQuery) Page[T] {
	if result == nil {
		result = []T{}
	}
	if q.IsAll() {
		return Page[T]{Result: result}
	}

	limit := q.Limit()
	pages := int((total + int64(limit) - 1) / int64(limit))
	current := q.Page

	return Page[T]{
		DocsCount:   &total,
		Limit:       &limit,
		Pages:       &pages,
		CurrentPage: &current,
		Result:      result,
	}
}
