package domain

import (
	"strings" // String normalization
	"time"    // Timestamps

	"github.com/google/uuid" // ID generation
	"gorm.io/gorm"           // GORM ORM library
)

// Role is the immutable account type chosen at registration
type Role string

const (
	RoleClient Role = "CLIENT" // Buys products
	RoleVendor Role = "VENDOR" // Sells products, owns a Vendor profile
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleVendor
}

// User Model
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`               // Primary key
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"` // Unique, lowercased email
	Password  string    `gorm:"not null" json:"-"`                          // Hashed password, never serialized
	Name      string    `gorm:"size:255;not null" json:"name"`              // Display name
	Role      Role      `gorm:"size:16;not null" json:"role"`               // CLIENT or VENDOR
	CreatedAt time.Time `json:"created_at"`                                 // Creation timestamp
}

// BeforeCreate assigns an ID and normalizes the email
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// NormalizeEmail trims and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
