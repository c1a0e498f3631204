package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkadris/dkadris_backend/models"
)

func affiliateFixture(name, email, code string) models.Affiliate {
	return models.Affiliate{
		Name:               name,
		Email:              email,
		Code:               code,
		ReferredAffiliates: []models.ReferredAffiliate{},
	}
}

func TestAddAffiliate_InsertsWithLowercasedKey(t *testing.T) {
	affiliates := map[string]models.Affiliate{}

	err := AddAffiliate(affiliates, affiliateFixture("David", "David@X.com", "david123"))
	require.NoError(t, err)

	stored, ok := affiliates["david@x.com"]
	require.True(t, ok)
	assert.Equal(t, "david@x.com", stored.Email)
}

func TestAddAffiliate_DuplicateEmailFails(t *testing.T) {
	affiliates := map[string]models.Affiliate{}
	require.NoError(t, AddAffiliate(affiliates, affiliateFixture("David", "david@x.com", "david123")))

	err := AddAffiliate(affiliates, affiliateFixture("Other David", "DAVID@x.com", "david999"))

	var dup *DuplicateAffiliateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "david@x.com", dup.Email)
	assert.Len(t, affiliates, 1)
}

func TestRegisterReferral_AppendsToReferrerNetwork(t *testing.T) {
	affiliates := map[string]models.Affiliate{}
	require.NoError(t, AddAffiliate(affiliates, affiliateFixture("David", "david@x.com", "david123")))

	updated := RegisterReferral("david123", "Jane Doe", "Jane@X.com", affiliates, nil)

	referrer := updated["david@x.com"]
	require.Len(t, referrer.ReferredAffiliates, 1)
	assert.Equal(t, "Jane Doe", referrer.ReferredAffiliates[0].Name)
	assert.Equal(t, "jane@x.com", referrer.ReferredAffiliates[0].Email)
	assert.True(t, referrer.ReferredAffiliates[0].BonusEligible)
}

func TestRegisterReferral_UnresolvedCodeLeavesCollectionUnchanged(t *testing.T) {
	affiliates := map[string]models.Affiliate{}
	require.NoError(t, AddAffiliate(affiliates, affiliateFixture("David", "david@x.com", "david123")))

	updated := RegisterReferral("nope999", "Jane", "jane@x.com", affiliates, nil)

	assert.Len(t, updated, 1)
	assert.Empty(t, updated["david@x.com"].ReferredAffiliates)
}

func TestRegisterReferral_EmptyCodeIsNoop(t *testing.T) {
	affiliates := map[string]models.Affiliate{}
	require.NoError(t, AddAffiliate(affiliates, affiliateFixture("David", "david@x.com", "david123")))

	updated := RegisterReferral("", "Jane", "jane@x.com", affiliates, nil)

	assert.Empty(t, updated["david@x.com"].ReferredAffiliates)
}

func TestRegisterReferral_PolicyDecidesEligibility(t *testing.T) {
	affiliates := map[string]models.Affiliate{}
	require.NoError(t, AddAffiliate(affiliates, affiliateFixture("David", "david@x.com", "david123")))

	never := func(models.Affiliate, models.ReferredAffiliate) bool { return false }
	updated := RegisterReferral("david123", "Jane", "jane@x.com", affiliates, never)

	referrer := updated["david@x.com"]
	require.Len(t, referrer.ReferredAffiliates, 1)
	assert.False(t, referrer.ReferredAffiliates[0].BonusEligible)
}

func TestComputeNetworkStats(t *testing.T) {
	affiliate := affiliateFixture("David", "david@x.com", "david123")
	affiliate.ReferredAffiliates = []models.ReferredAffiliate{
		{Name: "Jane", Email: "jane@x.com", BonusEligible: true},
		{Name: "Ken", Email: "ken@x.com", BonusEligible: false},
		{Name: "Ada", Email: "ada@x.com", BonusEligible: true},
	}

	stats := ComputeNetworkStats(affiliate)

	assert.Equal(t, 3, stats.Size)
	assert.Equal(t, 2, stats.BonusEligibleCount)
}

func TestFindByCode(t *testing.T) {
	affiliates := map[string]models.Affiliate{}
	require.NoError(t, AddAffiliate(affiliates, affiliateFixture("David", "david@x.com", "david123")))

	found, ok := FindByCode("david123", affiliates)
	require.True(t, ok)
	assert.Equal(t, "david@x.com", found.Email)

	_, ok = FindByCode("nope999", affiliates)
	assert.False(t, ok)
}

func TestNewReferredEntry_LowercasesEmailAndAppliesPolicy(t *testing.T) {
	referrer := affiliateFixture("David", "david@x.com", "david123")

	entry := NewReferredEntry(referrer, "Sara", " Sara@Y.COM ", nil)
	assert.Equal(t, "sara@y.com", entry.Email)
	assert.True(t, entry.BonusEligible)

	deny := func(models.Affiliate, models.ReferredAffiliate) bool { return false }
	entry = NewReferredEntry(referrer, "Sara", "sara@y.com", deny)
	assert.False(t, entry.BonusEligible)
}
