package softdelete

import (
	"fmt"

	"github.com/lib/pq"
)

// Các câu lệnh chuyển trạng thái dùng chung cho brands, categories, products
// $1 = id, $2 = updated_by

// FreezeSQL: chỉ tác động record đang active
func FreezeSQL(table string) string {
	return fmt.Sprintf(`
		UPDATE %s
		SET %s = NOW(), restored_at = NULL, updated_by = $2, updated_at = NOW()
		WHERE id = $1 AND %s IS NULL`,
		pq.QuoteIdentifier(table), Column, Column)
}

// RestoreSQL: chỉ tác động record đã freeze
func RestoreSQL(table string) string {
	return fmt.Sprintf(`
		UPDATE %s
		SET %s = NULL, restored_at = NOW(), updated_by = $2, updated_at = NOW()
		WHERE id = $1 AND %s IS NOT NULL`,
		pq.QuoteIdentifier(table), Column, Column)
}

// HardDeleteSQL: chỉ xoá record đã freeze, trả về các cột returning
func HardDeleteSQL(table, returning string) string {
	return fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND %s IS NOT NULL
		RETURNING %s`,
		pq.QuoteIdentifier(table), Column, returning)
}
