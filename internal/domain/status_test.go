package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("  shipped ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, got)

	got, err = ParseStatus("ON_HOLD")
	require.NoError(t, err)
	assert.Equal(t, Status("ON_HOLD"), got)

	for _, raw := range []string{"", "   ", "1PAID", "PAID!", "in transit", "ABCDEFGHIJKLMNOPQRSTUVWXYZABCDEFG"} {
		_, err := ParseStatus(raw)
		assert.Truef(t, errors.Is(err, ErrInvalidInput), "raw %q", raw)
	}
}

func TestValidateTransitionIsPermissive(t *testing.T) {
	assert.NoError(t, ValidateTransition(StatusPending, StatusShipped))
	assert.NoError(t, ValidateTransition(StatusDelivered, StatusPending))
	assert.NoError(t, ValidateTransition(StatusCancelled, "REFUNDED"))
	assert.ErrorIs(t, ValidateTransition(StatusPending, ""), ErrInvalidInput)
}
