package product

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateSalePrice(t *testing.T) {
	tests := []struct {
		name     string
		original string
		discount string
		want     string
	}{
		{"no discount", "100", "0", "100"},
		{"quarter off", "100", "25", "75"},
		{"fractional", "19.99", "10", "17.99"},
		{"floor at one", "0.5", "10", "1"},
		{"near full discount", "100", "99.5", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSalePrice(decimal.RequireFromString(tt.original), decimal.RequireFromString(tt.discount))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestAssetFolder(t *testing.T) {
	id := uuid.MustParse("5b3f8e7c-0f0a-4a4b-9d57-0d0f7e7b1a11")
	assert.Equal(t, "Category/abc/Product/5b3f8e7c-0f0a-4a4b-9d57-0d0f7e7b1a11", AssetFolder("Category/abc", id))
}

func TestCreateProductRequest_Validate(t *testing.T) {
	valid := CreateProductRequest{
		Name:          "Air Max",
		OriginalPrice: "120",
		Stock:         3,
		Category:      uuid.NewString(),
		Brand:         uuid.NewString(),
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.DiscountPercent = "100"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.OriginalPrice = "0"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.OriginalPrice = "abc"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Category = "nope"
	assert.Error(t, bad.Validate())

	original, discount := valid.Prices()
	assert.True(t, original.Equal(decimal.NewFromInt(120)))
	assert.True(t, discount.IsZero())
}

func TestUpdateProductRequest_Validate(t *testing.T) {
	assert.ErrorIs(t, UpdateProductRequest{}.Validate(), ErrEmptyUpdate)

	neg := decimal.NewFromInt(-1)
	assert.Error(t, UpdateProductRequest{DiscountPercent: &neg}.Validate())

	stock := 4
	req := UpdateProductRequest{Stock: &stock}
	assert.NoError(t, req.Validate())
	assert.False(t, req.TouchesPrice())
}
