package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Card represents a debit or credit card owned by a user.
type Card struct {
	ID        string           `gorm:"primaryKey;size:36"`
	UserID    string           `gorm:"size:36;index;not null"`
	Name      string           `gorm:"size:255;not null"`
	Type      string           `gorm:"size:16;not null"` // debit / credit
	Balance   decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0"`
	Limit     *decimal.Decimal `gorm:"column:credit_limit;type:decimal(15,2)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
