// ledger/earnings.go
package ledger

import (
	"fmt"
	"strings"

	"github.com/dkadris/dkadris_backend/models"
)

// Commission rates in basis points. A referred customer's earliest order
// credits the referrer at the first-purchase rate; every later order from the
// same customer credits at the recurrent rate.
const (
	FirstPurchaseRateBps = 1000 // 10%
	RecurrentRateBps     = 500  // 5%
)

// Earnings is a per-affiliate commission summary in minor currency units
type Earnings struct {
	FirstPurchaseTotal int64 `json:"firstPurchaseTotal"`
	RecurrentTotal     int64 `json:"recurrentTotal"`
}

// Total returns the combined commission
func (e Earnings) Total() int64 {
	return e.FirstPurchaseTotal + e.RecurrentTotal
}

// commission applies a basis-point rate to a minor-unit amount
func commission(total int64, rateBps int64) int64 {
	return total * rateBps / 10000
}

// ComputeEarnings computes the commission owed to the affiliate holding code
// from the full order set. Orders are grouped by customer email
// (case-insensitive); within each group the earliest order by timestamp is
// the first purchase, ties broken by insertion order. An order without a
// customer email is its own singleton customer and never merges with other
// anonymous orders. Any attributed order with a negative total or a zero
// timestamp fails the whole computation with a MalformedOrderError.
func ComputeEarnings(code string, orders []models.Order) (Earnings, error) {
	attributed := AttributedOrders(code, orders)

	for _, o := range attributed {
		if o.Total < 0 {
			return Earnings{}, &MalformedOrderError{OrderID: o.ID, Reason: "negative total"}
		}
		if o.Timestamp.IsZero() {
			return Earnings{}, &MalformedOrderError{OrderID: o.ID, Reason: "missing timestamp"}
		}
	}

	// Index of the first purchase per customer. Anonymous orders get a key
	// nobody else can collide with.
	firstIdx := make(map[string]int)
	for i, o := range attributed {
		key := customerKey(o, i)
		prev, seen := firstIdx[key]
		if !seen || attributed[i].Timestamp.Before(attributed[prev].Timestamp) {
			firstIdx[key] = i
		}
	}

	first := make(map[int]bool, len(firstIdx))
	for _, i := range firstIdx {
		first[i] = true
	}

	var earnings Earnings
	for i, o := range attributed {
		if first[i] {
			earnings.FirstPurchaseTotal += commission(o.Total, FirstPurchaseRateBps)
		} else {
			earnings.RecurrentTotal += commission(o.Total, RecurrentRateBps)
		}
	}
	return earnings, nil
}

func customerKey(o models.Order, idx int) string {
	email := strings.ToLower(strings.TrimSpace(o.CustomerEmail))
	if email == "" {
		return fmt.Sprintf("\x00anon-%d", idx)
	}
	return email
}
