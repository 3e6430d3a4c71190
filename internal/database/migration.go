package database

import (
	"fmt"

	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Image{},
		&models.Category{},
		&models.BankAccount{},
		&models.Card{},
		&models.Transaction{},
		&models.Group{},
		&models.GroupMember{},
		&models.GroupCategory{},
		&models.GroupInvite{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
