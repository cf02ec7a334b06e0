package utils

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Pseudonymizer derives stable, non-reversible references for personal
// identifiers so they can appear in logs
type Pseudonymizer struct {
	key []byte
}

// NewPseudonymizer returns a pseudonymizer keyed with key (1 to 64 bytes)
func NewPseudonymizer(key string) (*Pseudonymizer, error) {
	if len(key) == 0 || len(key) > blake2b.Size {
		return nil, fmt.Errorf("pseudonym key must be 1 to %d bytes, got %d", blake2b.Size, len(key))
	}
	return &Pseudonymizer{key: []byte(key)}, nil
}

// Reference returns a 16-byte hex reference for id, or "anonymous" when id
// is empty
func (p *Pseudonymizer) Reference(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "anonymous"
	}
	h, err := blake2b.New(16, p.key)
	if err != nil {
		// key length is checked in NewPseudonymizer
		panic(err)
	}
	h.Write([]byte(id))
	return hex.EncodeToString(h.Sum(nil))
}
