package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // ID generation
	"gorm.io/gorm"           // GORM ORM library
)

// Vendor Model
type Vendor struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`                  // Primary key
	UserID            string    `gorm:"uniqueIndex;size:36;not null" json:"user_id"`   // One-to-one with a VENDOR User
	ExternalPaymentID *string   `gorm:"size:255" json:"external_payment_id,omitempty"` // Opaque payment provider id
	CreatedAt         time.Time `json:"created_at"`                                    // Creation timestamp
	User              *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`       // Backing user
}

// BeforeCreate assigns an ID
func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
