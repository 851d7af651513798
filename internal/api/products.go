package api

import (
	"net/http" // HTTP status codes

	"marketplace/internal/catalog" // Catalog store

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact money parsing
)

// ProductRequest is the body of product create and update
type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`        // Product name
	Description string          `json:"description" binding:"required"` // Long description
	Price       decimal.Decimal `json:"price"`                          // Accepts "10.50" or 10.5
	Image       string          `json:"image" binding:"required"`       // Image URL
}

func (r ProductRequest) input() catalog.ProductInput {
	return catalog.ProductInput{Name: r.Name, Description: r.Description, Price: r.Price, Image: r.Image}
}

// ListProductsHandler returns every live product
func ListProductsHandler(products *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newProductViews(list))
	}
}

// GetProductHandler returns a single product
func GetProductHandler(products *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := products.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newProductView(*p))
	}
}

// CreateProductHandler lets a vendor publish a product
func CreateProductHandler(products *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentIdentity(c)
		if !ok {
			return
		}
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		p, err := products.Create(c.Request.Context(), id, req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, newProductView(*p))
	}
}

// UpdateProductHandler lets the owning vendor change a product
func UpdateProductHandler(products *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentIdentity(c)
		if !ok {
			return
		}
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		p, err := products.Update(c.Request.Context(), id, c.Param("id"), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newProductView(*p))
	}
}

// DeleteProductHandler lets the owning vendor withdraw a product
func DeleteProductHandler(products *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentIdentity(c)
		if !ok {
			return
		}
		if err := products.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
