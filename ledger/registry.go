// ledger/registry.go
package ledger

import (
	"strings"

	"github.com/dkadris/dkadris_backend/models"
)

// BonusPolicy decides whether a newly referred partner qualifies for the
// network-growth bonus at signup time. The engine never re-evaluates
// eligibility afterwards; milestone-based policies belong to the caller.
type BonusPolicy func(referrer models.Affiliate, referred models.ReferredAffiliate) bool

// AlwaysEligible grants the bonus to every referred partner
func AlwaysEligible(models.Affiliate, models.ReferredAffiliate) bool {
	return true
}

// NewReferredEntry builds the network entry recorded under a referrer when
// a referred partner signs up: email lowercased and trimmed, bonus
// eligibility fixed by policy at this moment. A nil policy defaults to
// AlwaysEligible.
func NewReferredEntry(referrer models.Affiliate, name, email string, policy BonusPolicy) models.ReferredAffiliate {
	if policy == nil {
		policy = AlwaysEligible
	}
	referred := models.ReferredAffiliate{
		Name:  name,
		Email: strings.ToLower(strings.TrimSpace(email)),
	}
	referred.BonusEligible = policy(referrer, referred)
	return referred
}

// AddAffiliate inserts a new affiliate into the collection keyed by
// lowercased email. An existing registration under the same email fails with
// a DuplicateAffiliateError.
func AddAffiliate(affiliates map[string]models.Affiliate, affiliate models.Affiliate) error {
	key := strings.ToLower(strings.TrimSpace(affiliate.Email))
	if _, exists := affiliates[key]; exists {
		return &DuplicateAffiliateError{Email: key}
	}
	affiliate.Email = key
	affiliates[key] = affiliate
	return nil
}

// RegisterReferral records a new signup under the affiliate holding
// referrerCode and returns the updated collection. An unresolved referrer
// code is not an error: the referral is simply dropped and the collection
// returned unchanged. Bonus eligibility is fixed by policy at this moment;
// a nil policy defaults to AlwaysEligible.
func RegisterReferral(referrerCode, name, email string, affiliates map[string]models.Affiliate, policy BonusPolicy) map[string]models.Affiliate {
	if referrerCode == "" {
		return affiliates
	}

	for key, a := range affiliates {
		if a.Code != referrerCode {
			continue
		}
		a.ReferredAffiliates = append(a.ReferredAffiliates, NewReferredEntry(a, name, email, policy))
		affiliates[key] = a
		return affiliates
	}
	return affiliates
}

// FindByCode resolves a referral code to its affiliate
func FindByCode(code string, affiliates map[string]models.Affiliate) (models.Affiliate, bool) {
	for _, a := range affiliates {
		if a.Code == code {
			return a, true
		}
	}
	return models.Affiliate{}, false
}
