// controllers/order_controller_test.go
package controllers

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkadris/dkadris_backend/models"
)

func TestOrderTotal(t *testing.T) {
	total, err := orderTotal(180000, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(360000), total)
}

func TestOrderTotalRejectsOverflow(t *testing.T) {
	// wraps negative
	_, err := orderTotal(3, 1<<62)
	assert.Error(t, err)

	// wraps silently to zero
	_, err = orderTotal(500000, 1<<60)
	assert.Error(t, err)
}

func TestOrderTotalRejectsNonPositiveInputs(t *testing.T) {
	_, err := orderTotal(0, 5)
	assert.Error(t, err)

	_, err = orderTotal(180000, 0)
	assert.Error(t, err)

	_, err = orderTotal(-180000, 1)
	assert.Error(t, err)
}

func TestCheckoutRequestQuantityBounds(t *testing.T) {
	v := validator.New()

	req := models.CheckoutRequest{ProductID: "p1", Quantity: 1}
	assert.NoError(t, v.Struct(req))

	req.Quantity = 101
	assert.Error(t, v.Struct(req))

	req.Quantity = 1 << 62
	assert.Error(t, v.Struct(req))
}
