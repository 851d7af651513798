package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.OrderCreated(decimal.RequireFromString("20.00"))
	m.OrderCreated(decimal.RequireFromString("5.50"))
	m.OrderCreateFailed("not_found")
	m.StatusUpdated("SHIPPED")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersCreated))
	assert.InDelta(t, 25.5, testutil.ToFloat64(m.orderValue), 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.orderFailures.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusUpdates.WithLabelValues("SHIPPED")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.OrderCreated(decimal.NewFromInt(1))
	m.OrderCreateFailed("x")
	m.StatusUpdated("PAID")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	m := New(prometheus.NewRegistry())
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/products/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/products/a", "/api/products/b", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/products/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
}
