package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestProductNotFoundError(t *testing.T) {
	var err error = &ProductNotFoundError{ProductID: "missing"}
	wrapped := fmt.Errorf("create order: %w", err)

	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, "product missing not found", err.Error())

	var pnf *ProductNotFoundError
	assert.True(t, errors.As(wrapped, &pnf))
	assert.Equal(t, "missing", pnf.ProductID)
}

func TestStoreError(t *testing.T) {
	assert.NoError(t, StoreError(nil))
	assert.ErrorIs(t, StoreError(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, StoreError(gorm.ErrDuplicatedKey), ErrConflict)
	assert.ErrorIs(t, StoreError(context.DeadlineExceeded), ErrTransient)
	assert.ErrorIs(t, StoreError(errors.New("connection reset")), ErrTransient)

	forbidden := fmt.Errorf("%w: nope", ErrForbidden)
	assert.Equal(t, forbidden, StoreError(forbidden))
	assert.NotErrorIs(t, StoreError(forbidden), ErrTransient)
}
