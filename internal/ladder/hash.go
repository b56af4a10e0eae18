package ladder

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainLadder is the domain prefix for ladder IDs. The version suffix
// leaves room for a future change of canonical form.
const DomainLadder = "amida/ladder/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ID computes the content-addressed identity of l: identical boards (same
// grid, same rungs in any order, same results) share an ID no matter how
// their entry names were edited.
func ID(l Ladder) (string, error) {
	canonical, err := MarshalCanonical(l)
	if err != nil {
		return "", fmt.Errorf("ladder ID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainLadder, canonical), nil
}
