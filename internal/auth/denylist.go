package auth

import (
	"fmt"
	"time"
)

// KV is the subset of cache.Store the denylist needs.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// Denylist records revoked token ids until the token would have expired anyway.
type Denylist struct {
	kv  KV
	now func() time.Time
}

// NewDenylist creates a Denylist on kv.
func NewDenylist(kv KV) *Denylist {
	return &Denylist{kv: kv, now: time.Now}
}

func denyKey(jti string) string {
	return "revoked:" + jti
}

// Revoke denies the token id until expiresAt. Already expired tokens need no entry.
func (d *Denylist) Revoke(jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := d.kv.Set(denyKey(jti), []byte("1"), ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id was revoked.
func (d *Denylist) IsRevoked(jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	v, err := d.kv.Get(denyKey(jti))
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return v != nil, nil
}
