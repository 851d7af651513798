package domain

import (
	"time" // Timestamps

	"github.com/google/uuid"        // ID generation
	"github.com/shopspring/decimal" // Exact money arithmetic
	"gorm.io/gorm"                  // GORM ORM library
)

// MaxAmount is the exclusive upper bound of every stored price and total; decimal(12,2) holds values below 10^10
var MaxAmount = decimal.New(1, 10)

// Order Model. Created once together with its items; afterwards only Status changes.
type Order struct {
	ID             string          `gorm:"primaryKey;size:36" json:"id"`                                                // Primary key
	UserID         string          `gorm:"size:36;not null;uniqueIndex:idx_orders_user_idem,priority:1" json:"user_id"` // Purchasing user
	IdempotencyKey *string         `gorm:"size:128;uniqueIndex:idx_orders_user_idem,priority:2" json:"-"`               // Optional client retry key
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`                             // Sum of item line totals
	Status         Status          `gorm:"size:32;not null" json:"status"`                                              // Current status
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`                                                     // Creation timestamp
	UpdatedAt      time.Time       `json:"updated_at"`                                                                  // Last status change
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`                 // Immutable line items
	User           *User           `gorm:"foreignKey:UserID" json:"-"`                                                  // Purchaser, loaded for vendor views
}

// OrderItem Model
type OrderItem struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`                                                            // Primary key
	OrderID   string          `gorm:"size:36;not null;index" json:"order_id"`                                                  // Owning order
	Line      int             `gorm:"column:line_no;not null" json:"line"`                                                     // 1-based position in the order
	ProductID string          `gorm:"size:36;not null;index" json:"product_id"`                                                // Referenced product
	Quantity  int             `gorm:"not null" json:"quantity"`                                                                // Units bought, > 0
	UnitPrice decimal.Decimal `gorm:"column:unit_price_at_purchase;type:decimal(12,2);not null" json:"unit_price_at_purchase"` // Price snapshot
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`                                           // Product detail, may be soft-deleted
}

// BeforeCreate assigns an ID
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	return nil
}

// BeforeCreate assigns an ID
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// LineTotal is quantity times the snapshotted unit price
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ComputeTotal sums the line totals of the order's items
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}
