// middleware/jwt_middleware_test.go
package middleware

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBlacklistConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	expiry := time.Now().Add(time.Hour)

	for i := 0; i < 50; i++ {
		wg.Add(3)
		token := fmt.Sprintf("token-%d", i)
		go func() {
			defer wg.Done()
			BlacklistToken(token, expiry)
		}()
		go func() {
			defer wg.Done()
			IsTokenBlacklisted(token)
		}()
		go func() {
			defer wg.Done()
			sweepBlacklist(time.Now())
		}()
	}
	wg.Wait()

	assert.True(t, IsTokenBlacklisted("token-0"))
}

func TestSweepBlacklistRemovesExpiredTokens(t *testing.T) {
	BlacklistToken("expired-token", time.Now().Add(-time.Minute))
	BlacklistToken("live-token", time.Now().Add(time.Hour))

	sweepBlacklist(time.Now())

	assert.False(t, IsTokenBlacklisted("expired-token"))
	assert.True(t, IsTokenBlacklisted("live-token"))
}
