package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dkadris/dkadris_backend/models"
)

func orderAt(id, code, email string, total int64, ts time.Time) models.Order {
	return models.Order{
		ID:            id,
		ProductName:   "Agbada Classic",
		Quantity:      1,
		Total:         total,
		Status:        models.OrderStatusPending,
		Timestamp:     ts,
		ReferrerCode:  code,
		CustomerEmail: email,
	}
}

func TestAttributedOrders_FiltersAndPreservesOrder(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt("o1", "david123", "a@x.com", 10000, t1),
		orderAt("o2", "grace42", "b@x.com", 7000, t1.Add(time.Hour)),
		orderAt("o3", "david123", "c@x.com", 8000, t1.Add(2*time.Hour)),
		orderAt("o4", "", "d@x.com", 9000, t1.Add(3*time.Hour)),
		orderAt("o5", "david123", "a@x.com", 5000, t1.Add(4*time.Hour)),
	}

	attributed := AttributedOrders("david123", orders)

	assert.Len(t, attributed, 3)
	assert.Equal(t, "o1", attributed[0].ID)
	assert.Equal(t, "o3", attributed[1].ID)
	assert.Equal(t, "o5", attributed[2].ID)
	for _, o := range attributed {
		assert.Equal(t, "david123", o.ReferrerCode)
	}
}

func TestAttributedOrders_UnmatchedCodeYieldsEmpty(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt("o1", "david123", "a@x.com", 10000, t1),
	}

	attributed := AttributedOrders("nope999", orders)

	assert.NotNil(t, attributed)
	assert.Empty(t, attributed)
}

func TestAttributedOrders_EmptyCodeDoesNotMatchAttributedOrders(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt("o1", "david123", "a@x.com", 10000, t1),
		orderAt("o2", "", "b@x.com", 7000, t1),
	}

	attributed := AttributedOrders("", orders)

	assert.Len(t, attributed, 1)
	assert.Equal(t, "o2", attributed[0].ID)
}
