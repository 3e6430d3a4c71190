package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BankAccount represents a checking or savings account owned by a user.
type BankAccount struct {
	ID        string          `gorm:"primaryKey;size:36"`
	UserID    string          `gorm:"size:36;index;not null"`
	Name      string          `gorm:"size:255;not null"`
	Type      string          `gorm:"size:16;not null"` // checking / savings
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *BankAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
