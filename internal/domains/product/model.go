package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// Folder - ảnh product nằm trong Category/{categoryAssetFolderId}/Product/{assetFolderId}
	Folder    = "Product"
	MaxImages = 5
)

var (
	hundred    = decimal.NewFromInt(100)
	priceFloor = decimal.NewFromInt(1)
)

// Product entity - bảng products
type Product struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     *string         `json:"description,omitempty"`
	Images          []string        `json:"images"`
	OriginalPrice   decimal.Decimal `json:"originalPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	SalePrice       decimal.Decimal `json:"salePrice"`
	Stock           int             `json:"stock"`
	SoldItems       int             `json:"soldItems"`
	AssetFolderID   uuid.UUID       `json:"assetFolderId"`
	CategoryID      uuid.UUID       `json:"category"`
	BrandID         uuid.UUID       `json:"brand"`
	CreatedBy       uuid.UUID       `json:"createdBy"`
	UpdatedBy       *uuid.UUID      `json:"updatedBy,omitempty"`
	FreezedAt       *time.Time      `json:"freezedAt,omitempty"`
	RestoredAt      *time.Time      `json:"restoredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (p *Product) IsFrozen() bool {
	return p.FreezedAt != nil
}

// InStock - đủ hàng cho quantity
func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}

// Summary - dữ liệu product gắn vào từng dòng cart
type Summary struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Images    []string        `json:"images"`
	SalePrice decimal.Decimal `json:"salePrice"`
	Stock     int             `json:"stock"`
}

func (p *Product) Summary() Summary {
	return Summary{
		ID:        p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		Images:    p.Images,
		SalePrice: p.SalePrice,
		Stock:     p.Stock,
	}
}

// CalculateSalePrice = original - original*discount/100, tối thiểu là 1
func CalculateSalePrice(original, discountPercent decimal.Decimal) decimal.Decimal {
	sale := original.Sub(original.Mul(discountPercent).Div(hundred)).Round(2)
	if sale.LessThan(priceFloor) {
		return priceFloor
	}
	return sale
}

// AssetFolder build Category/{categoryAssetFolderId}/Product/{assetFolderId}
func AssetFolder(categoryFolder string, assetFolderID uuid.UUID) string {
	return categoryFolder + "/" + Folder + "/" + assetFolderID.String()
}
