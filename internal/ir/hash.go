package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainSystemIR is the domain prefix for SystemIR content addressing.
// The version suffix enables future algorithm migration.
const DomainSystemIR = "weft/systemir/v1"

// hashWithDomain computes SHA-256 with domain separation. The null byte
// separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SystemHash computes the content-addressed identity of a compiled system.
// Stable across processes and restarts given the same IR; keys the archive
// store and the compile cache.
func SystemHash(s *SystemIR) (string, error) {
	canonical, err := CanonicalJSON(s)
	if err != nil {
		return "", fmt.Errorf("SystemHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSystemIR, canonical), nil
}
