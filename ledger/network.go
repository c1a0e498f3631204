// ledger/network.go
package ledger

import "github.com/dkadris/dkadris_backend/models"

// NetworkStats summarizes an affiliate's direct-referral network
type NetworkStats struct {
	Size               int `json:"size"`
	BonusEligibleCount int `json:"bonusEligibleCount"`
}

// ComputeNetworkStats counts the affiliate's referred partners and how many
// of them qualify for the network-growth bonus.
func ComputeNetworkStats(affiliate models.Affiliate) NetworkStats {
	stats := NetworkStats{Size: len(affiliate.ReferredAffiliates)}
	for _, r := range affiliate.ReferredAffiliates {
		if r.BonusEligible {
			stats.BonusEligibleCount++
		}
	}
	return stats
}
