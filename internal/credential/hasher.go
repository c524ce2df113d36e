package credential

import "golang.org/x/crypto/bcrypt"

// Hasher performs the one-way transform applied to user secrets before they
// reach the store.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Compare(hash, plaintext string) error
}

// bcrypt only reads the first 72 bytes of its input. Longer plaintexts are
// truncated rather than rejected, so plaintext length and content stay
// unconstrained for callers.
const maxPlaintextBytes = 72

// BcryptHasher hashes with bcrypt at the package default cost. Each call
// embeds a fresh random salt, so equal plaintexts produce distinct hashes.
type BcryptHasher struct{}

// NewBcryptHasher returns the production hasher.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

// Hash transforms plaintext into a storable bcrypt hash. It only fails on
// internal faults, never on the plaintext itself.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether plaintext matches a previously produced hash.
func (h *BcryptHasher) Compare(hash, plaintext string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(plaintext))
}

func truncate(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > maxPlaintextBytes {
		b = b[:maxPlaintextBytes]
	}
	return b
}
