// Package order is the order engine: server-priced, all-or-nothing order
// creation, client and vendor order views, and owner-only status changes.
package order

import (
	"context" // Request-scoped deadlines
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"math"    // Column bounds
	"time"    // Log timestamps

	"marketplace/internal/authz"   // Ownership predicates
	"marketplace/internal/catalog" // Product lookups inside the order transaction
	"marketplace/internal/domain"  // Domain models and errors
	"marketplace/internal/metrics" // Order counters

	"github.com/google/uuid"     // ID generation
	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Association control
)

const maxIdempotencyKeyLen = 128

// Engine creates orders and mediates their status changes
type Engine struct {
	db      *gorm.DB
	metrics *metrics.Metrics // nil disables metrics
}

// NewEngine creates the order engine on an explicit store handle
func NewEngine(db *gorm.DB, m *metrics.Metrics) *Engine {
	return &Engine{db: db, metrics: m}
}

// LineInput is one requested line: a product reference and a quantity
type LineInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput is a validated order request. Prices are never taken from the caller.
type CreateOrderInput struct {
	IdempotencyKey string // Optional; a replay with the same key returns the first order
	Items          []LineInput
}

func (in CreateOrderInput) validate() error {
	if len(in.Items) == 0 {
		return domain.Invalid("order must contain at least one item")
	}
	for i, item := range in.Items {
		if item.ProductID == "" {
			return domain.Invalid("item %d: product id is required", i)
		}
		if item.Quantity <= 0 || item.Quantity > math.MaxInt32 {
			return domain.Invalid("item %d: quantity must be a positive integer", i)
		}
	}
	if len(in.IdempotencyKey) > maxIdempotencyKeyLen {
		return domain.Invalid("idempotency key must be at most %d characters", maxIdempotencyKeyLen)
	}
	return nil
}

// withItems preloads line items in order, each with its product even when soft-deleted
func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no") }).
		Preload("Items.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

// CreateOrder prices every line from the catalog and persists the order with its items atomically.
// A missing product aborts the whole order with a *domain.ProductNotFoundError.
func (e *Engine) CreateOrder(ctx context.Context, id authz.Identity, in CreateOrderInput) (*domain.Order, error) {
	if err := authz.Require(authz.CanPurchase(id), "place orders"); err != nil {
		e.metrics.OrderCreateFailed("forbidden")
		return nil, err
	}
	if err := in.validate(); err != nil {
		e.metrics.OrderCreateFailed("invalid_input")
		return nil, err
	}

	var order *domain.Order
	replayed := false
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.IdempotencyKey != "" {
			existing, err := findByIdempotencyKey(tx, id.UserID, in.IdempotencyKey)
			if err == nil {
				order, replayed = existing, true
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		var err error
		order, err = priceOrder(tx, id.UserID, in)
		if err != nil {
			return err
		}
		// Parent row first, then every line; any failure rolls both back
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&order.Items).Error
	})

	if err != nil && in.IdempotencyKey != "" && errors.Is(domain.StoreError(err), domain.ErrConflict) {
		// A concurrent request with the same key committed first
		existing, lookupErr := findByIdempotencyKey(e.db.WithContext(ctx), id.UserID, in.IdempotencyKey)
		if lookupErr == nil {
			order, replayed, err = existing, true, nil
		}
	}
	if err != nil {
		err = domain.StoreError(err)
		e.metrics.OrderCreateFailed(failureReason(err))
		logrus.WithFields(logrus.Fields{
			"user_id": id.UserID,
			"items":   len(in.Items),
			"error":   err.Error(),
		}).Error("Order creation failed")
		return nil, err
	}

	if replayed {
		logrus.WithFields(logrus.Fields{"user_id": id.UserID, "order_id": order.ID}).Info("Order creation replayed")
		return order, nil
	}
	e.metrics.OrderCreated(order.TotalAmount)
	logrus.WithFields(logrus.Fields{
		"user_id":      id.UserID,
		"order_id":     order.ID,
		"items":        len(order.Items),
		"total_amount": order.TotalAmount.String(),
		"timestamp":    time.Now().Format(time.RFC3339),
	}).Info("Order created")
	return order, nil
}

// priceOrder builds the order in memory from products read inside tx
func priceOrder(tx *gorm.DB, userID string, in CreateOrderInput) (*domain.Order, error) {
	ids := make([]string, 0, len(in.Items))
	seen := make(map[string]bool, len(in.Items))
	for _, item := range in.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	products, err := catalog.FindByIDs(tx, ids)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:     uuid.NewString(),
		UserID: userID,
		Status: domain.StatusPending,
		Items:  make([]domain.OrderItem, 0, len(in.Items)),
	}
	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		order.IdempotencyKey = &key
	}
	for i, line := range in.Items {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, &domain.ProductNotFoundError{ProductID: line.ProductID}
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			Line:      i + 1,
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price, // Snapshot; later price changes never reach this line
			Product:   &product,
		})
	}
	order.TotalAmount = order.ComputeTotal()
	if order.TotalAmount.GreaterThanOrEqual(domain.MaxAmount) {
		return nil, domain.Invalid("order total %s must be below %s", order.TotalAmount.StringFixed(2), domain.MaxAmount)
	}
	return order, nil
}

func findByIdempotencyKey(db *gorm.DB, userID, key string) (*domain.Order, error) {
	var order domain.Order
	err := withItems(db).Where("user_id = ? AND idempotency_key = ?", userID, key).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "store"
	}
}

// ListForClient returns the caller's own orders, oldest first
func (e *Engine) ListForClient(ctx context.Context, id authz.Identity) ([]domain.Order, error) {
	if err := authz.Require(authz.CanPurchase(id), "list orders"); err != nil {
		return nil, err
	}
	orders := []domain.Order{}
	err := withItems(e.db.WithContext(ctx)).
		Where("user_id = ?", id.UserID).
		Order("created_at, id").
		Find(&orders).Error
	if err != nil {
		return nil, domain.StoreError(err)
	}
	return orders, nil
}

// ListForVendor returns every order with at least one line for the caller's products.
// Orders are returned whole, including lines that belong to other vendors.
func (e *Engine) ListForVendor(ctx context.Context, id authz.Identity) ([]domain.Order, error) {
	if err := authz.Require(authz.IsVendorRole(id) && id.VendorID != "", "list vendor orders"); err != nil {
		return nil, err
	}
	db := e.db.WithContext(ctx)
	// Plain table names so soft-deleted products still count
	withVendorLine := db.Table("order_items").
		Select("order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.vendor_id = ?", id.VendorID)

	orders := []domain.Order{}
	err := withItems(db).
		Preload("User").
		Where("id IN (?)", withVendorLine).
		Order("created_at, id").
		Find(&orders).Error
	if err != nil {
		return nil, domain.StoreError(err)
	}
	return orders, nil
}

// GetOrder returns one of the caller's orders
func (e *Engine) GetOrder(ctx context.Context, id authz.Identity, orderID string) (*domain.Order, error) {
	var order domain.Order
	if err := withItems(e.db.WithContext(ctx)).First(&order, "id = ?", orderID).Error; err != nil {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.StoreError(err))
	}
	if err := authz.Require(authz.IsOrderOwner(id, &order), "view this order"); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus changes an order's status. Only the purchasing user may do this.
func (e *Engine) UpdateStatus(ctx context.Context, id authz.Identity, orderID, rawStatus string) (*domain.Order, error) {
	var order domain.Order
	var status, previous domain.Status
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return fmt.Errorf("order %s: %w", orderID, domain.StoreError(err))
		}
		if err := authz.Require(authz.IsOrderOwner(id, &order), "change this order's status"); err != nil {
			return err
		}
		var err error
		if status, err = domain.ParseStatus(rawStatus); err != nil {
			return err
		}
		if err := domain.ValidateTransition(order.Status, status); err != nil {
			return err
		}
		previous = order.Status
		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return err
		}
		return withItems(tx).First(&order, "id = ?", orderID).Error
	})
	if err != nil {
		err = domain.StoreError(err)
		logrus.WithFields(logrus.Fields{
			"user_id":  id.UserID,
			"order_id": orderID,
			"status":   rawStatus,
			"error":    err.Error(),
		}).Warn("Order status update rejected")
		return nil, err
	}

	e.metrics.StatusUpdated(string(status))
	logrus.WithFields(logrus.Fields{
		"user_id":  id.UserID,
		"order_id": orderID,
		"from":     previous,
		"to":       status,
	}).Info("Order status updated")
	return &order, nil
}
