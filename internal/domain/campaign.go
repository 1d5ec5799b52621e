package domain

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// CampaignID is the keccak-256 hash of the UTF-8 bytes of a campaign name.
// The chain keeps no reverse mapping, so the name can only be recovered by hashing candidates.
type CampaignID [32]byte

// CampaignIDFromName hashes a campaign name exactly as the contract does.
// The name is not trimmed, case-folded or otherwise normalized.
func CampaignIDFromName(name string) CampaignID {
	return CampaignID(crypto.Keccak256Hash([]byte(name)))
}

// ParseCampaignID parses a 32-byte hex hash, with or without the 0x prefix, in any case
func ParseCampaignID(s string) (CampaignID, error) {
	var id CampaignID

	raw := strings.TrimSpace(s)
	if raw == "" {
		return id, fmt.Errorf("%w: empty campaign id", ErrDataShape)
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X")

	decoded, err := hex.DecodeString(raw)
	if err != nil {
		return id, fmt.Errorf("%w: invalid campaign id %q: %v", ErrDataShape, s, err)
	}
	if len(decoded) != len(id) {
		return id, fmt.Errorf("%w: campaign id %q has %d bytes, expected %d", ErrDataShape, s, len(decoded), len(id))
	}

	copy(id[:], decoded)
	return id, nil
}

// NormalizeHashHex lowercases a hex hash and makes sure it carries the 0x prefix
func NormalizeHashHex(s string) string {
	h := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(h, "0x") {
		h = "0x" + h
	}
	return h
}

// Hex returns the lowercase 0x-prefixed form
func (id CampaignID) Hex() string {
	return "0x" + hex.EncodeToString(id[:])
}

// String implements fmt.Stringer
func (id CampaignID) String() string {
	return id.Hex()
}

// Hash converts the id into a go-ethereum hash
func (id CampaignID) Hash() common.Hash {
	return common.Hash(id)
}

// IsZero reports whether the id is all zeroes
func (id CampaignID) IsZero() bool {
	return id == CampaignID{}
}

// MarshalText implements encoding.TextMarshaler
func (id CampaignID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *CampaignID) UnmarshalText(text []byte) error {
	parsed, err := ParseCampaignID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
