package crypto

import (
	"fmt"

	"github.com/alexedwards/argon2id"
)

// Hasher stores room passwords as argon2id hashes.
type Hasher struct {
	params *argon2id.Params
}

// NewHasher returns a Hasher using params. Memory is in KiB.
func NewHasher(params *argon2id.Params) *Hasher {
	if params == nil {
		params = argon2id.DefaultParams
	}
	return &Hasher{params: params}
}

func (h *Hasher) Hash(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, h.params)
	if err != nil {
		return "", fmt.Errorf("argon2id hash: %w", err)
	}
	return hash, nil
}

// Verify reports whether password matches hash.
func (h *Hasher) Verify(password, hash string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("argon2id compare: %w", err)
	}
	return match, nil
}
