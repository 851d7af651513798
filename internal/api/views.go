package api

import (
	"time" // Timestamps

	"marketplace/internal/domain" // Domain models

	"github.com/shopspring/decimal" // Money formatting
)

// money renders an amount with exactly two decimals
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// UserView is the public shape of a User
type UserView struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// VendorView is the public shape of a Vendor
type VendorView struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Name              string    `json:"name,omitempty"`
	ExternalPaymentID *string   `json:"external_payment_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// ProductView is the public shape of a Product
type ProductView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Image       string    `json:"image"`
	VendorID    string    `json:"vendor_id"`
	VendorName  string    `json:"vendor_name,omitempty"`
	Deleted     bool      `json:"deleted,omitempty"` // Only visible through order history
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderItemView is one line of an OrderView
type OrderItemView struct {
	ID                  string       `json:"id"`
	ProductID           string       `json:"product_id"`
	Product             *ProductView `json:"product,omitempty"`
	Quantity            int          `json:"quantity"`
	UnitPriceAtPurchase string       `json:"unit_price_at_purchase"`
	LineTotal           string       `json:"line_total"`
}

// CustomerView identifies the purchaser in vendor views
type CustomerView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderView is the public shape of an Order
type OrderView struct {
	ID          string          `json:"id"`
	Status      domain.Status   `json:"status"`
	TotalAmount string          `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Items       []OrderItemView `json:"items"`
	Customer    *CustomerView   `json:"customer,omitempty"`
}

func newUserView(u domain.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt}
}

func newVendorView(v *domain.Vendor) *VendorView {
	if v == nil {
		return nil
	}
	view := &VendorView{ID: v.ID, UserID: v.UserID, ExternalPaymentID: v.ExternalPaymentID, CreatedAt: v.CreatedAt}
	if v.User != nil {
		view.Name = v.User.Name
	}
	return view
}

func newProductView(p domain.Product) ProductView {
	view := ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money(p.Price),
		Image:       p.Image,
		VendorID:    p.VendorID,
		Deleted:     p.DeletedAt.Valid,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Vendor != nil && p.Vendor.User != nil {
		view.VendorName = p.Vendor.User.Name
	}
	return view
}

func newProductViews(products []domain.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views
}

// newOrderView builds the client-facing view; withCustomer adds the purchaser for vendors
func newOrderView(o domain.Order, withCustomer bool) OrderView {
	view := OrderView{
		ID:          o.ID,
		Status:      o.Status,
		TotalAmount: money(o.TotalAmount),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       make([]OrderItemView, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		iv := OrderItemView{
			ID:                  item.ID,
			ProductID:           item.ProductID,
			Quantity:            item.Quantity,
			UnitPriceAtPurchase: money(item.UnitPrice),
			LineTotal:           money(item.LineTotal()),
		}
		if item.Product != nil {
			pv := newProductView(*item.Product)
			iv.Product = &pv
		}
		view.Items = append(view.Items, iv)
	}
	if withCustomer && o.User != nil {
		view.Customer = &CustomerView{ID: o.User.ID, Name: o.User.Name, Email: o.User.Email}
	}
	return view
}

func newOrderViews(orders []domain.Order, withCustomer bool) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o, withCustomer))
	}
	return views
}
