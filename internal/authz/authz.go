// Package authz holds the ownership and role predicates every mutating
// catalog or order operation consults before it writes.
package authz

import (
	"fmt" // Error wrapping

	"marketplace/internal/domain" // Domain models and errors
)

// Identity is the authenticated caller resolved from a bearer token
type Identity struct {
	UserID   string      // User.ID
	Role     domain.Role // CLIENT or VENDOR
	VendorID string      // Vendor.ID, empty unless Role is VENDOR
}

// IsVendorRole reports whether the identity is a vendor
func IsVendorRole(id Identity) bool {
	return id.Role == domain.RoleVendor
}

// IsOwnerOfProduct reports whether the identity's vendor profile owns the product
func IsOwnerOfProduct(id Identity, p *domain.Product) bool {
	return p != nil && id.VendorID != "" && id.VendorID == p.VendorID
}

// IsOrderOwner reports whether the identity placed the order
func IsOrderOwner(id Identity, o *domain.Order) bool {
	return o != nil && id.UserID != "" && id.UserID == o.UserID
}

// CanPurchase reports whether the identity may place orders. Any authenticated role can.
func CanPurchase(id Identity) bool {
	return id.UserID != "" && id.Role.Valid()
}

// Require turns a false predicate into an ErrForbidden naming the attempted action
func Require(ok bool, action string) error {
	if ok {
		return nil
	}
	return fmt.Errorf("%w: not allowed to %s", domain.ErrForbidden, action)
}
