package ledger

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeGenerator_DerivesFromFirstWordOfName(t *testing.T) {
	gen := NewCodeGenerator(rand.NewSource(1))

	code, err := gen.Generate("John Doe", map[string]bool{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(code, "john"), "got %q", code)
	assert.Greater(t, len(code), len("john"))
}

func TestCodeGenerator_NeverReturnsExistingCode(t *testing.T) {
	existing := map[string]bool{"john123": true, "john456": true}
	gen := NewCodeGenerator(rand.NewSource(42))

	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		code, err := gen.Generate("John Doe", existing)
		require.NoError(t, err)
		assert.NotContains(t, existing, code)
		seen[code] = true
	}
	assert.NotEmpty(t, seen)
}

func TestCodeGenerator_DeterministicForSeed(t *testing.T) {
	first := NewCodeGenerator(rand.NewSource(7))
	second := NewCodeGenerator(rand.NewSource(7))

	a, err := first.Generate("Grace Eze", map[string]bool{})
	require.NoError(t, err)
	b, err := second.Generate("Grace Eze", map[string]bool{})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCodeGenerator_FallsBackWhenNameHasNoUsableCharacters(t *testing.T) {
	gen := NewCodeGenerator(rand.NewSource(1))

	code, err := gen.Generate("!!! ???", map[string]bool{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "partner"), "got %q", code)
}

func TestCodeGenerator_WidensSuffixSpanInCrowdedNamespace(t *testing.T) {
	// Occupy the entire initial three-digit span.
	existing := map[string]bool{}
	for i := 0; i < 1000; i++ {
		gen := NewCodeGenerator(rand.NewSource(int64(i)))
		code, err := gen.Generate("Ada", existing)
		require.NoError(t, err)
		existing[code] = true
	}

	gen := NewCodeGenerator(rand.NewSource(99))
	code, err := gen.Generate("Ada", existing)
	require.NoError(t, err)
	assert.NotContains(t, existing, code)
}

func TestCodeGenerator_ExhaustedBudgetFailsLoudly(t *testing.T) {
	gen := NewCodeGenerator(rand.NewSource(1))
	gen.maxAttempts = 10

	existing := map[string]bool{}
	for i := 0; i < 100000; i++ {
		existing["ada"+strconv.Itoa(i)] = true
	}

	_, err := gen.Generate("Ada", existing)
	assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
}
