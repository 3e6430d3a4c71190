package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is a single income or expense record. Amounts are stored
// always positive; Type carries the sign. A nil GroupID means a personal
// transaction; otherwise the row contributes to that group's balance
// once IsPaid is set.
//
// Category is a denormalized label snapshot, on purpose: renaming a
// category later must not rewrite past transactions.
type Transaction struct {
	ID                 string          `gorm:"primaryKey;size:36"`
	UserID             string          `gorm:"size:36;index;not null"`
	GroupID            *string         `gorm:"size:36;index"`
	Description        string          `gorm:"size:255;not null"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type               string          `gorm:"size:16;not null"` // income / expense
	Date               time.Time       `gorm:"index;not null"`
	Category           string          `gorm:"size:255;not null"`
	CategoryEmoji      *string         `gorm:"size:10"`
	PaymentMethod      *string         `gorm:"size:16"` // pix / cash / card / bank
	PaymentMethodID    *string         `gorm:"size:36"`
	PaymentMethodName  *string         `gorm:"size:255"`
	ScheduledDate      *time.Time
	IsPaid             bool `gorm:"not null;default:true"`
	InstallmentTotal   *int
	InstallmentCurrent *int
	UserName           *string `gorm:"size:255"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
