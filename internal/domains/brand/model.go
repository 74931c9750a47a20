package brand

import (
	"time"

	"github.com/google/uuid"
)

// Folder - prefix lưu ảnh brand trên bucket
const Folder = "Brand"

// Brand entity - bảng brands
type Brand struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	Slogan     string     `json:"slogan"`
	Image      string     `json:"image"`
	CreatedBy  uuid.UUID  `json:"createdBy"`
	UpdatedBy  *uuid.UUID `json:"updatedBy,omitempty"`
	FreezedAt  *time.Time `json:"freezedAt,omitempty"`
	RestoredAt *time.Time `json:"restoredAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (b *Brand) IsFrozen() bool {
	return b.FreezedAt != nil
}
