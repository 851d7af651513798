package db

import (
	"marketplace/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// Parents before children so foreign keys resolve
	err := db.AutoMigrate(&domain.User{}, &domain.Vendor{}, &domain.Product{}, &domain.Order{}, &domain.OrderItem{})
	if err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
