// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// ErrTooLong is returned by Hash for passwords longer than 72 bytes.
var ErrTooLong = bcrypt.ErrPasswordTooLong

// Hasher hashes and verifies passwords.
type Hasher struct {
	cost int
}

// New creates a Hasher with the given bcrypt cost.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt digest of plaintext.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest.
// Malformed digests never match.
func (h *Hasher) Verify(ctx context.Context, plaintext, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	return err == nil
}
