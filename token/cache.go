package token

import (
	"errors"
	"sync"
	"time"

	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"
)

const CName = "apns.token"

var log = logger.NewNamed(CName)

// Lifetime is how long a signed provider token is reused before a fresh
// one is issued. APNs rejects tokens older than one hour; the 60 second
// margin keeps a token from expiring mid-flight.
const Lifetime = 3540 * time.Second

// ErrClockBeforeEpoch means the system clock reports a time before the
// unix epoch, so no valid issue timestamp can be produced.
var ErrClockBeforeEpoch = errors.New("apns: system clock is before the unix epoch")

// Cache keeps the most recently signed provider token of one client and
// replaces it shortly before APNs stops accepting it.
type Cache struct {
	sign func(issuedAt time.Time) (string, error)
	now  func() time.Time

	mu       sync.RWMutex
	jwt      string
	issuedAt time.Time
}

func NewCache(signer *Signer) *Cache {
	return &Cache{
		sign: signer.SignAt,
		now:  time.Now,
	}
}

// Token returns the cached provider token, signing a fresh one when the
// cached one is absent or older than Lifetime. Readers of a valid token
// never block each other. Concurrent callers that both observe an expired
// token may both sign; the loser's overwrite is harmless because either
// token is valid, and the slot is always swapped as a whole.
func (c *Cache) Token() (string, error) {
	now := c.now()
	if now.Unix() < 0 {
		return "", ErrClockBeforeEpoch
	}
	c.mu.RLock()
	jwt, issuedAt := c.jwt, c.issuedAt
	c.mu.RUnlock()
	if jwt != "" && now.Sub(issuedAt) < Lifetime {
		return jwt, nil
	}
	jwt, err := c.sign(now)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.jwt = jwt
	c.issuedAt = now
	c.mu.Unlock()
	log.Debug("provider token refreshed", zap.Int64("issuedAt", now.Unix()))
	return jwt, nil
}
