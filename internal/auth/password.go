package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor applied to new password hashes.
// Cost 10 (~100ms per hash on current commodity hardware) keeps offline
// brute force expensive without making login noticeably slow.
const DefaultBcryptCost = 10

// ErrCredentialFormat is returned when a stored digest cannot be parsed
// as a bcrypt hash. A plain wrong password is never an error.
var ErrCredentialFormat = errors.New("malformed credential digest")

// PasswordHasher hashes and verifies passwords with bcrypt. The digest
// encodes algorithm, cost, and salt, so verification needs no side channel.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given work factor.
// Costs outside bcrypt's supported range fall back to DefaultBcryptCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash generates a salted one-way digest of the plaintext password.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A mismatched password
// returns (false, nil); only an unparseable digest returns an error, as
// ErrCredentialFormat. bcrypt's comparison is constant-time, so the
// mismatch and corrupt-digest paths are not timing-distinguishable.
func (h *PasswordHasher) Verify(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, ErrCredentialFormat
}
