// ledger/errors.go
package ledger

import (
	"errors"
	"fmt"
)

// ErrCodeSpaceExhausted is returned when the generator cannot find a free
// referral code. Hitting it means the uniqueness loop is broken or the code
// space is genuinely full; callers must fail loudly, never overwrite.
var ErrCodeSpaceExhausted = errors.New("ledger: referral code space exhausted")

// MalformedOrderError signals an order whose monetary or timestamp fields
// cannot be trusted. Earnings computation rejects the whole batch instead of
// silently coercing, so downstream totals are never wrong without signal.
type MalformedOrderError struct {
	OrderID string
	Reason  string
}

func (e *MalformedOrderError) Error() string {
	return fmt.Sprintf("ledger: malformed order %s: %s", e.OrderID, e.Reason)
}

// DuplicateAffiliateError signals a registration against an email that is
// already taken. The signup flow surfaces this to the user.
type DuplicateAffiliateError struct {
	Email string
}

func (e *DuplicateAffiliateError) Error() string {
	return fmt.Sprintf("ledger: affiliate already registered for %s", e.Email)
}
