// utils/valid_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  David@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "david@example.com", email)

	_, err = SanitizeEmail("not-an-email")
	assert.Error(t, err)
}

func TestSanitizeReferralCode(t *testing.T) {
	assert.Equal(t, "david123", SanitizeReferralCode(" DAVID123 "))
	assert.Equal(t, "david123", SanitizeReferralCode("david-123!"))
	assert.Equal(t, "", SanitizeReferralCode("   "))
}

func TestSanitizeInputStripsControlCharacters(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("hel\x00lo\n"))
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", SanitizeInput("<b>bold</b>"))
}
