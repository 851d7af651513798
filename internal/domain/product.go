package domain

import (
	"time" // Timestamps

	"github.com/google/uuid"        // ID generation
	"github.com/shopspring/decimal" // Exact money arithmetic
	"gorm.io/gorm"                  // GORM ORM library
)

// Product Model
type Product struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`                // Primary key
	Name        string          `gorm:"size:255;not null" json:"name"`               // Product name
	Description string          `gorm:"type:text" json:"description"`                // Long description
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`    // Current price, always > 0
	Image       string          `gorm:"size:1024" json:"image"`                      // Image URL
	VendorID    string          `gorm:"size:36;not null;index" json:"vendor_id"`     // Owning Vendor, never changes
	CreatedAt   time.Time       `json:"created_at"`                                  // Creation timestamp
	UpdatedAt   time.Time       `json:"updated_at"`                                  // Last update timestamp
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`                              // Soft delete keeps order history resolvable
	Vendor      *Vendor         `gorm:"foreignKey:VendorID" json:"vendor,omitempty"` // Owning vendor, loaded for listings
}

// BeforeCreate assigns an ID
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
