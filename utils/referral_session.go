// utils/referral_session.go
package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Visitor referral sessions: when a shopper lands on the catalog through a
// shared link, the referral token is held server-side for the duration of
// the visit so checkout can attribute the order without trusting the client
// to echo the code back.
const referralSessionTTL = 24 * time.Hour

func referralSessionKey(visitorID string) string {
	return "referral_session:" + visitorID
}

// CacheReferralToken stores the referral code captured from an inbound link
func CacheReferralToken(ctx context.Context, rdb *redis.Client, visitorID, code string) error {
	if rdb == nil || visitorID == "" || code == "" {
		return nil
	}
	return rdb.Set(ctx, referralSessionKey(visitorID), code, referralSessionTTL).Err()
}

// LookupReferralToken retrieves the cached referral code for a visitor, if any
func LookupReferralToken(ctx context.Context, rdb *redis.Client, visitorID string) string {
	if rdb == nil || visitorID == "" {
		return ""
	}
	code, err := rdb.Get(ctx, referralSessionKey(visitorID)).Result()
	if err != nil {
		return ""
	}
	return code
}
