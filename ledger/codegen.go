// ledger/codegen.go
package ledger

import (
	"math/rand"
	"strconv"
	"strings"
)

const codeFallbackBase = "partner"

// CodeGenerator derives shareable referral codes from affiliate names. The
// random source is injected so tests can seed it; production callers seed
// from crypto-grade entropy at startup.
type CodeGenerator struct {
	rng         *rand.Rand
	maxAttempts int
}

// NewCodeGenerator builds a generator over the given source
func NewCodeGenerator(src rand.Source) *CodeGenerator {
	return &CodeGenerator{
		rng:         rand.New(src),
		maxAttempts: 10000,
	}
}

// Generate returns a code of the form <first word of name, lowercased><n>
// that is guaranteed absent from existingCodes. The suffix range widens as
// attempts accumulate so a crowded namespace still terminates. When the
// attempt budget runs out it returns ErrCodeSpaceExhausted rather than risk
// overwriting an existing affiliate.
func (g *CodeGenerator) Generate(name string, existingCodes map[string]bool) (string, error) {
	base := codeBase(name)
	span := 1000
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if attempt > 0 && attempt%1000 == 0 {
			span *= 10
		}
		candidate := base + strconv.Itoa(g.rng.Intn(span))
		if !existingCodes[candidate] {
			return candidate, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

// codeBase keeps only letters and digits of the name's first word
func codeBase(name string) string {
	first := name
	if i := strings.IndexAny(name, " \t"); i >= 0 {
		first = name[:i]
	}
	first = strings.ToLower(strings.TrimSpace(first))
	first = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, first)
	if first == "" {
		return codeFallbackBase
	}
	return first
}
