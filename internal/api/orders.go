package api

import (
	"net/http" // HTTP status codes

	"marketplace/internal/order" // Order engine

	"github.com/gin-gonic/gin" // Gin web framework
)

// IdempotencyHeader carries an optional client retry key for order creation
const IdempotencyHeader = "Idempotency-Key"

// OrderLineRequest is one requested line
type OrderLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`    // Product reference
	Quantity  int    `json:"quantity" binding:"required,gt=0"` // Units to buy
}

// CreateOrderRequest is the body of POST /api/orders. Prices are never accepted from the client.
type CreateOrderRequest struct {
	Items []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateStatusRequest is the body of PATCH /api/orders/:id/status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrderHandler prices and persists an order for the caller
func CreateOrderHandler(orders *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentIdentity(c)
		if !ok {
			return
		}
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		in := order.CreateOrderInput{
			IdempotencyKey: c.GetHeader(IdempotencyHeader),
			Items:          make([]order.LineInput, 0, len(req.Items)),
		}
		for _, line := range req.Items {
			in.Items = append(in.Items, order.LineInput{ProductID: line.ProductID, Quantity: line.Quantity})
		}
		o, err := orders.CreateOrder(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, newOrderView(*o, false))
	}
}

// MyOrdersHandler lists the caller's own orders
func MyOrdersHandler(orders *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentIdentity(c)
		if !ok {
			return
		}
		list, err := orders.ListForClient(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newOrderViews(list, false))
	}
}

// GetOrderHandler returns one of the caller's orders
func GetOrderHandler(orders *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentIdentity(c)
		if !ok {
			return
		}
		o, err := orders.GetOrder(c.Request.Context(), id, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newOrderView(*o, false))
	}
}

// UpdateOrderStatusHandler lets the order owner change its status
func UpdateOrderStatusHandler(orders *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentIdentity(c)
		if !ok {
			return
		}
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		o, err := orders.UpdateStatus(c.Request.Context(), id, c.Param("id"), req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newOrderView(*o, false))
	}
}
