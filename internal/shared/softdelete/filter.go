package softdelete

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Mode - paranoid mode của một query trên entity có soft-delete
type Mode int

const (
	// Active (default): ẩn record đã freeze
	Active Mode = iota
	// All: tắt paranoid, filter giữ nguyên
	All
	// Archived: chỉ lấy record đã freeze
	Archived
)

func (m Mode) String() string {
	switch m {
	case All:
		return "all"
	case Archived:
		return "archived"
	default:
		return "active"
	}
}

// Column chứa timestamp soft-delete
const Column = "freezed_at"

// Filter build WHERE clause với placeholder $n cho pgx
//
//	f := softdelete.NewFilter(softdelete.Active, "b")
//	f.Where("b.name = ?", name)
//	where, args := f.Build() // WHERE b.name = $1 AND b.freezed_at IS NULL
type Filter struct {
	mode  Mode
	alias string
	conds []string
	args  []interface{}
}

// NewFilter tạo filter, alias là table alias (có thể rỗng)
func NewFilter(mode Mode, alias string) *Filter {
	return &Filter{mode: mode, alias: alias}
}

func (f *Filter) Mode() Mode {
	return f.mode
}

// Col thêm alias vào tên cột
func (f *Filter) Col(name string) string {
	if f.alias == "" {
		return name
	}
	return f.alias + "." + name
}

// Arg đăng ký một argument và trả về placeholder tương ứng
func (f *Filter) Arg(v interface{}) string {
	f.args = append(f.args, v)
	return fmt.Sprintf("$%d", len(f.args))
}

// Where thêm điều kiện, mỗi "?" trong cond được thay bằng $n theo thứ tự args
func (f *Filter) Where(cond string, args ...interface{}) *Filter {
	var b strings.Builder
	i := 0
	for _, r := range cond {
		if r == '?' && i < len(args) {
			b.WriteString(f.Arg(args[i]))
			i++
			continue
		}
		b.WriteRune(r)
	}
	f.conds = append(f.conds, b.String())
	return f
}

// Search thêm điều kiện ILIKE (OR) trên các cột, bỏ qua nếu term rỗng
func (f *Filter) Search(term string, columns ...string) *Filter {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return f
	}

	placeholder := f.Arg("%" + escapeLike(term) + "%")
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE %s", f.Col(col), placeholder)
	}
	f.conds = append(f.conds, "("+strings.Join(parts, " OR ")+")")
	return f
}

// paranoid trả về điều kiện soft-delete theo mode
func (f *Filter) paranoid() string {
	switch f.mode {
	case All:
		return ""
	case Archived:
		return f.Col(Column) + " IS NOT NULL"
	default:
		return f.Col(Column) + " IS NULL"
	}
}

// Conditions - toàn bộ điều kiện đã gồm paranoid, nối bằng AND
func (f *Filter) Conditions() string {
	conds := append([]string{}, f.conds...)
	if p := f.paranoid(); p != "" {
		conds = append(conds, p)
	}
	return strings.Join(conds, " AND ")
}

// Build trả về "WHERE ..." (hoặc rỗng) cùng args
func (f *Filter) Build() (string, []interface{}) {
	conds := f.Conditions()
	if conds == "" {
		return "", f.args
	}
	return "WHERE " + conds, f.args
}

// Args trả về các argument đã đăng ký
func (f *Filter) Args() []interface{} {
	return f.args
}

// OrderBy trả về ORDER BY với cột đã whitelist, fallback nếu không hợp lệ
// sort dạng "name" hoặc "-created_at" (giảm dần)
func (f *Filter) OrderBy(sort string, allowed []string, fallback string) string {
	dir := "ASC"
	if strings.HasPrefix(sort, "-") {
		dir = "DESC"
		sort = strings.TrimPrefix(sort, "-")
	}

	for _, col := range allowed {
		if col == sort {
			return fmt.Sprintf("ORDER BY %s %s", f.qualified(pq.QuoteIdentifier(col)), dir)
		}
	}
	return "ORDER BY " + fallback
}

func (f *Filter) qualified(quoted string) string {
	if f.alias == "" {
		return quoted
	}
	return f.alias + "." + quoted
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
