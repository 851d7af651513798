package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid", domain.Invalid("quantity must be positive"), http.StatusBadRequest},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", fmt.Errorf("update order: %w", domain.ErrForbidden), http.StatusForbidden},
		{"not found", fmt.Errorf("order o1: %w", domain.ErrNotFound), http.StatusNotFound},
		{"transient", domain.StoreError(errors.New("connection reset")), http.StatusServiceUnavailable},
		{"missing product", &domain.ProductNotFoundError{ProductID: "p9"}, http.StatusNotFound},
		{"conflict", domain.ErrConflict, http.StatusConflict},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tc.err)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}
