package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkadris/dkadris_backend/models"
)

func TestComputeEarnings_FirstAndRecurrentTiers(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt("o1", "david123", "a@x.com", 10000, t1),
		orderAt("o2", "david123", "a@x.com", 5000, t1.Add(time.Hour)),
		orderAt("o3", "david123", "b@x.com", 8000, t1.Add(2*time.Hour)),
	}

	earnings, err := ComputeEarnings("david123", orders)
	require.NoError(t, err)

	// 10000*10% + 8000*10% first tier, 5000*5% recurrent
	assert.Equal(t, int64(1800), earnings.FirstPurchaseTotal)
	assert.Equal(t, int64(250), earnings.RecurrentTotal)
	assert.Equal(t, int64(2050), earnings.Total())
}

func TestComputeEarnings_EarliestTimestampWinsRegardlessOfInsertionOrder(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	// The repeat purchase appears before the first purchase in the collection.
	orders := []models.Order{
		orderAt("late", "david123", "a@x.com", 5000, t1.Add(time.Hour)),
		orderAt("early", "david123", "a@x.com", 10000, t1),
	}

	earnings, err := ComputeEarnings("david123", orders)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), earnings.FirstPurchaseTotal)
	assert.Equal(t, int64(250), earnings.RecurrentTotal)
}

func TestComputeEarnings_EqualTimestampsTieBreakByInsertionOrder(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt("o1", "david123", "a@x.com", 10000, t1),
		orderAt("o2", "david123", "a@x.com", 4000, t1),
	}

	earnings, err := ComputeEarnings("david123", orders)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), earnings.FirstPurchaseTotal)
	assert.Equal(t, int64(200), earnings.RecurrentTotal)
}

func TestComputeEarnings_ReorderingAcrossCustomersDoesNotChangeTotals(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt("o1", "david123", "a@x.com", 10000, t1),
		orderAt("o2", "david123", "a@x.com", 5000, t1.Add(time.Hour)),
		orderAt("o3", "david123", "b@x.com", 8000, t1.Add(2*time.Hour)),
	}
	shuffled := []models.Order{orders[2], orders[0], orders[1]}

	first, err := ComputeEarnings("david123", orders)
	require.NoError(t, err)
	second, err := ComputeEarnings("david123", shuffled)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeEarnings_IsIdempotent(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt("o1", "david123", "a@x.com", 10000, t1),
		orderAt("o2", "david123", "b@x.com", 8000, t1.Add(time.Hour)),
	}

	first, err := ComputeEarnings("david123", orders)
	require.NoError(t, err)
	second, err := ComputeEarnings("david123", orders)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeEarnings_AnonymousOrdersNeverMerge(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	// Two orders without a customer email: each is its own first purchase.
	orders := []models.Order{
		orderAt("o1", "david123", "", 10000, t1),
		orderAt("o2", "david123", "", 6000, t1.Add(time.Hour)),
	}

	earnings, err := ComputeEarnings("david123", orders)
	require.NoError(t, err)

	assert.Equal(t, int64(1600), earnings.FirstPurchaseTotal)
	assert.Zero(t, earnings.RecurrentTotal)
}

func TestComputeEarnings_CustomerEmailIsCaseInsensitive(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt("o1", "david123", "A@X.com", 10000, t1),
		orderAt("o2", "david123", "a@x.com", 5000, t1.Add(time.Hour)),
	}

	earnings, err := ComputeEarnings("david123", orders)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), earnings.FirstPurchaseTotal)
	assert.Equal(t, int64(250), earnings.RecurrentTotal)
}

func TestComputeEarnings_RejectsNegativeTotal(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt("bad", "david123", "a@x.com", -1, t1),
	}

	_, err := ComputeEarnings("david123", orders)

	var malformed *MalformedOrderError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "bad", malformed.OrderID)
}

func TestComputeEarnings_RejectsZeroTimestamp(t *testing.T) {
	orders := []models.Order{
		orderAt("bad", "david123", "a@x.com", 10000, time.Time{}),
	}

	_, err := ComputeEarnings("david123", orders)

	var malformed *MalformedOrderError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Error(), "missing timestamp")
}

func TestComputeEarnings_IgnoresMalformedUnattributedOrders(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt("bad", "grace42", "a@x.com", -1, t1),
		orderAt("good", "david123", "b@x.com", 8000, t1),
	}

	earnings, err := ComputeEarnings("david123", orders)
	require.NoError(t, err)
	assert.Equal(t, int64(800), earnings.FirstPurchaseTotal)
}

func TestComputeEarnings_NoAttributedOrders(t *testing.T) {
	earnings, err := ComputeEarnings("david123", nil)
	require.NoError(t, err)
	assert.Zero(t, earnings.Total())
}
