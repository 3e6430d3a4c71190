package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a per-user income/expense category.
type Category struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:36;index;not null"`
	Name      string `gorm:"size:255;not null"`
	Emoji     string `gorm:"size:10;not null"`
	Type      string `gorm:"size:16;not null"` // income / expense
	CreatedAt time.Time
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
