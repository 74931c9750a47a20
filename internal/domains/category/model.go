package category

import (
	"time"

	"github.com/google/uuid"
)

// Folder - prefix gốc, ảnh của một category nằm trong Category/{assetFolderId}
const Folder = "Category"

// Category entity - bảng categories
type Category struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Slug          string      `json:"slug"`
	Description   *string     `json:"description,omitempty"`
	Image         string      `json:"image"`
	AssetFolderID uuid.UUID   `json:"assetFolderId"`
	BrandIDs      []uuid.UUID `json:"brands"`
	CreatedBy     uuid.UUID   `json:"createdBy"`
	UpdatedBy     *uuid.UUID  `json:"updatedBy,omitempty"`
	FreezedAt     *time.Time  `json:"freezedAt,omitempty"`
	RestoredAt    *time.Time  `json:"restoredAt,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func (c *Category) IsFrozen() bool {
	return c.FreezedAt != nil
}

// AssetFolder - Category/{assetFolderId}
func (c *Category) AssetFolder() string {
	return AssetFolder(c.AssetFolderID)
}

func AssetFolder(assetFolderID uuid.UUID) string {
	return Folder + "/" + assetFolderID.String()
}
