package softdelete

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_ParanoidModes(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Active, "WHERE b.name = $1 AND b.freezed_at IS NULL"},
		{All, "WHERE b.name = $1"},
		{Archived, "WHERE b.name = $1 AND b.freezed_at IS NOT NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			f := NewFilter(tt.mode, "b").Where("b.name = ?", "Nike")
			where, args := f.Build()
			assert.Equal(t, tt.want, where)
			assert.Equal(t, []interface{}{"Nike"}, args)
		})
	}
}

func TestFilter_EmptyAll(t *testing.T) {
	where, args := NewFilter(All, "").Build()
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilter_SearchAndPaginate(t *testing.T) {
	f := NewFilter(Active, "")
	f.Where("category_id = ? AND stock >= ?", "cat", 1)
	f.Search("50%_off", "name", "slug")

	where, _ := f.Build()
	assert.Equal(t,
		"WHERE category_id = $1 AND stock >= $2 AND (name ILIKE $3 OR slug ILIKE $3) AND freezed_at IS NULL",
		where)

	limit := f.Paginate(PageQuery{Page: 3, Size: 10})
	assert.Equal(t, "LIMIT $4 OFFSET $5", limit)
	assert.Equal(t, []interface{}{"cat", 1, `%50\%\_off%`, 10, 20}, f.Args())
}

func TestFilter_SearchBlankIgnored(t *testing.T) {
	f := NewFilter(Active, "").Search("   ", "name")
	where, args := f.Build()
	assert.Equal(t, "WHERE freezed_at IS NULL", where)
	assert.Empty(t, args)
}

func TestFilter_OrderBy(t *testing.T) {
	f := NewFilter(Active, "p")
	allowed := []string{"name", "created_at"}

	assert.Equal(t, `ORDER BY p."created_at" DESC`, f.OrderBy("-created_at", allowed, "p.created_at DESC"))
	assert.Equal(t, `ORDER BY p."name" ASC`, f.OrderBy("name", allowed, "p.created_at DESC"))
	assert.Equal(t, "ORDER BY p.created_at DESC", f.OrderBy("password; DROP TABLE", allowed, "p.created_at DESC"))
}

func TestPaginate_All(t *testing.T) {
	f := NewFilter(Active, "")
	assert.Empty(t, f.Paginate(PageQuery{}))
	assert.Empty(t, f.Args())
}

func TestNewPage(t *testing.T) {
	t.Run("paged", func(t *testing.T) {
		page := NewPage([]string{"a", "b"}, 12, PageQuery{Page: 2})
		require.NotNil(t, page.DocsCount)
		assert.EqualValues(t, 12, *page.DocsCount)
		assert.Equal(t, DefaultPageSize, *page.Limit)
		assert.Equal(t, 3, *page.Pages)
		assert.Equal(t, 2, *page.CurrentPage)
	})

	t.Run("all omits meta", func(t *testing.T) {
		page := NewPage[string](nil, 0, PageQuery{})
		raw, err := json.Marshal(page)
		require.NoError(t, err)
		assert.JSONEq(t, `{"result":[]}`, string(raw))
	})
}

func TestStatements(t *testing.T) {
	freeze := FreezeSQL("brands")
	assert.Contains(t, freeze, `UPDATE "brands"`)
	assert.Contains(t, freeze, "WHERE id = $1 AND freezed_at IS NULL")
	assert.Contains(t, freeze, "restored_at = NULL")

	restore := RestoreSQL("brands")
	assert.Contains(t, restore, "freezed_at = NULL, restored_at = NOW()")
	assert.Contains(t, restore, "WHERE id = $1 AND freezed_at IS NOT NULL")

	del := HardDeleteSQL("products", "images")
	assert.Contains(t, del, `DELETE FROM "products"`)
	assert.Contains(t, del, "freezed_at IS NOT NULL")
	assert.Contains(t, del, "RETURNING images")
}
