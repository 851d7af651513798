package api

import (
	"net/http" // HTTP status codes

	"marketplace/internal/account" // Identity store
	"marketplace/internal/catalog" // Catalog store
	"marketplace/internal/order"   // Order engine

	"github.com/gin-gonic/gin" // Gin web framework
)

// PaymentIDRequest is the body of POST /api/vendor/payment-id
type PaymentIDRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
}

// VendorOrdersHandler lists every order containing one of the vendor's products
func VendorOrdersHandler(orders *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentIdentity(c)
		if !ok {
			return
		}
		list, err := orders.ListForVendor(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newOrderViews(list, true))
	}
}

// VendorProductsHandler lists the vendor's own live products
func VendorProductsHandler(products *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentIdentity(c)
		if !ok {
			return
		}
		list, err := products.ListByVendor(c.Request.Context(), id.VendorID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newProductViews(list))
	}
}

// SetPaymentIDHandler records the vendor's external payment account
func SetPaymentIDHandler(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentIdentity(c)
		if !ok {
			return
		}
		var req PaymentIDRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		v, err := accounts.SetPaymentID(c.Request.Context(), id, req.PaymentID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newVendorView(v))
	}
}

// GetVendorHandler returns the public vendor profile of a user
func GetVendorHandler(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := accounts.GetVendorByUserID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		view := newVendorView(v)
		view.ExternalPaymentID = nil // Private to the vendor
		c.JSON(http.StatusOK, view)
	}
}
