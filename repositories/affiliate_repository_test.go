// repositories/affiliate_repository_test.go
package repositories

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dkadris/dkadris_backend/ledger"
)

func duplicateKeyError(message string) error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: message},
		},
	}
}

func TestClassifyDuplicateKeyEmailIndex(t *testing.T) {
	err := classifyDuplicateKey(
		duplicateKeyError(`E11000 duplicate key error collection: dkadris.affiliates index: email_1 dup key: { email: "david@example.com" }`),
		"david@example.com", "david123",
	)

	var dup *ledger.DuplicateAffiliateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "david@example.com", dup.Email)
}

func TestClassifyDuplicateKeyCodeIndexIsNotADuplicateAccount(t *testing.T) {
	err := classifyDuplicateKey(
		duplicateKeyError(`E11000 duplicate key error collection: dkadris.affiliates index: code_1 dup key: { code: "david123" }`),
		"david@example.com", "david123",
	)

	require.Error(t, err)
	var dup *ledger.DuplicateAffiliateError
	assert.False(t, errors.As(err, &dup))
	assert.Contains(t, err.Error(), "david123")
}

func TestClassifyDuplicateKeyPassesThroughOtherErrors(t *testing.T) {
	assert.NoError(t, classifyDuplicateKey(nil, "a@b.com", "a1"))

	plain := errors.New("network timeout")
	assert.Equal(t, plain, classifyDuplicateKey(plain, "a@b.com", "a1"))
}
