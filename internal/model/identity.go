package model

import (
	"encoding/hex"
	"fmt"
)

// Identity is a 32-byte public identity carried as 64 lowercase hex characters.
// Signers, restaurant owners, employees, customers, and settlement currencies
// are all identified this way.
type Identity string

// IdentityHexLen is the expected length of the hex form.
const IdentityHexLen = 64

// Validate checks that the identity is well-formed.
func (id Identity) Validate() error {
	if len(id) != IdentityHexLen {
		return fmt.Errorf("identity must be %d hex characters, got %d", IdentityHexLen, len(id))
	}
	if _, err := hex.DecodeString(string(id)); err != nil {
		return fmt.Errorf("identity is not valid hex: %w", err)
	}
	return nil
}

// Bytes returns the decoded 32-byte form, or the raw string bytes if the
// identity is malformed. Derivation stays deterministic either way; validation
// happens before any identity reaches a derivation.
func (id Identity) Bytes() []byte {
	b, err := hex.DecodeString(string(id))
	if err != nil {
		return []byte(id)
	}
	return b
}
