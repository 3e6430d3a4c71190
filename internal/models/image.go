package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image is a content-addressed blob. Uploading the same bytes twice
// always resolves to the same row (keyed by checksum).
type Image struct {
	ID        string `gorm:"primaryKey;size:36"`
	Checksum  string `gorm:"size:32;uniqueIndex;not null"` // md5 hex
	Path      string `gorm:"type:text;not null"`           // stable serving path, /api/images/{id}
	Data      string `gorm:"type:text;not null"`           // base64 encoded bytes
	MimeType  string `gorm:"size:100;not null;default:image/png"`
	CreatedAt time.Time
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
