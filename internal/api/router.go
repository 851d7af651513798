package api

import (
	"context"  // Health check deadlines
	"net/http" // HTTP status codes
	"slices"   // Origin list inspection
	"time"     // Timeouts

	"marketplace/internal/account"    // Identity store
	"marketplace/internal/catalog"    // Catalog store
	"marketplace/internal/config"     // Configuration
	"marketplace/internal/metrics"    // Prometheus collectors
	"marketplace/internal/middleware" // Auth and timeout middleware
	"marketplace/internal/order"      // Order engine

	"github.com/gin-contrib/cors"                             // CORS middleware
	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus"          // Metrics registry
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// Deps are the services the router exposes
type Deps struct {
	Config   *config.Config
	Accounts *account.Service
	Catalog  *catalog.Service
	Orders   *order.Engine
	Metrics  *metrics.Metrics       // nil disables request metrics
	Gatherer prometheus.Gatherer    // nil disables /metrics
	Checks   map[string]HealthCheck // Probed by /healthz
}

// NewRouter wires every route onto a gin engine
func NewRouter(d Deps) *gin.Engine {
	r := gin.Default() // Logger and Recovery
	r.Use(cors.New(corsConfig(d.Config.CORSOrigins)))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}

	r.GET("/healthz", healthHandler(d.Checks))
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	api.Use(middleware.RequestTimeout(d.Config.RequestTimeout))

	// Auth routes
	api.POST("/auth/register", RegisterHandler(d.Accounts))
	api.POST("/auth/login", LoginHandler(d.Accounts))

	authed := api.Group("", middleware.JWTAuthMiddleware(d.Config.JWTSecret), middleware.IdentityMiddleware(d.Accounts))
	vendorOnly := authed.Group("", middleware.VendorOnlyMiddleware())

	// Product routes, reads are public
	api.GET("/products", ListProductsHandler(d.Catalog))
	api.GET("/products/:id", GetProductHandler(d.Catalog))
	vendorOnly.POST("/products", CreateProductHandler(d.Catalog))
	vendorOnly.PUT("/products/:id", UpdateProductHandler(d.Catalog))
	vendorOnly.DELETE("/products/:id", DeleteProductHandler(d.Catalog))

	// Order routes
	authed.POST("/orders", CreateOrderHandler(d.Orders))
	authed.GET("/orders/my-orders", MyOrdersHandler(d.Orders))
	authed.GET("/orders/:id", GetOrderHandler(d.Orders))
	authed.PATCH("/orders/:id/status", UpdateOrderStatusHandler(d.Orders))

	// Vendor routes
	vendorOnly.GET("/vendor/orders", VendorOrdersHandler(d.Orders))
	vendorOnly.GET("/vendor/products", VendorProductsHandler(d.Catalog))
	vendorOnly.POST("/vendor/payment-id", SetPaymentIDHandler(d.Accounts))
	api.GET("/vendor/:id", GetVendorHandler(d.Accounts))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", IdempotencyHeader)
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func healthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := gin.H{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": results})
	}
}
