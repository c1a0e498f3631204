// ledger/attribution.go

// Package ledger is the referral ledger engine: a pure, stateless function
// set over snapshots of the affiliate and order collections. It owns the
// mapping of referral codes to affiliates, records referred sub-affiliates,
// and derives per-affiliate earnings and network statistics. Persistence of
// the collections is the caller's responsibility; the engine never retains
// cross-call state and never mutates orders.
package ledger

import "github.com/dkadris/dkadris_backend/models"

// AttributedOrders returns the orders whose referrer code equals code,
// preserving the relative order of the input collection. An unmatched code
// yields an empty slice.
func AttributedOrders(code string, orders []models.Order) []models.Order {
	attributed := make([]models.Order, 0)
	for _, o := range orders {
		if o.ReferrerCode == code {
			attributed = append(attributed, o)
		}
	}
	return attributed
}
