package registry

import (
	"fmt"
	"strings"

	"github.com/feral-file/airdrop-monitor/internal/adapter"
	"github.com/feral-file/airdrop-monitor/internal/domain"
)

// unknownPrefixLength is how much of the hex hash the placeholder name keeps, 0x included
const unknownPrefixLength = 14

// CampaignNames resolves campaign ids back to human readable names.
// A registry is immutable once built.
type CampaignNames interface {
	// Resolve returns the name of a hex campaign id.
	// Explicit hash names win over known names. Unmatched ids get an "Unknown (0x...)" placeholder.
	Resolve(hexID string) string

	// ResolveID is Resolve for a parsed id
	ResolveID(id domain.CampaignID) string

	// KnownNames returns the candidate names in configuration order
	KnownNames() []string
}

// CampaignNamesData represents the structure of the campaign names registry file
type CampaignNamesData struct {
	KnownNames []string          `json:"known_names" mapstructure:"known_names"`
	HashNames  map[string]string `json:"hash_names" mapstructure:"hash_names"`
}

// Merge returns the union of both registries.
// Known names of other are appended after d's, skipping duplicates, and its hash names override d's.
func (d CampaignNamesData) Merge(other CampaignNamesData) CampaignNamesData {
	merged := CampaignNamesData{
		KnownNames: make([]string, 0, len(d.KnownNames)+len(other.KnownNames)),
		HashNames:  make(map[string]string, len(d.HashNames)+len(other.HashNames)),
	}

	seen := make(map[string]bool)
	for _, names := range [][]string{d.KnownNames, other.KnownNames} {
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			merged.KnownNames = append(merged.KnownNames, name)
		}
	}

	for hash, name := range d.HashNames {
		merged.HashNames[domain.NormalizeHashHex(hash)] = name
	}
	for hash, name := range other.HashNames {
		merged.HashNames[domain.NormalizeHashHex(hash)] = name
	}

	return merged
}

type campaignNames struct {
	known     []string
	overrides map[string]string
	// keccak of each known name, first name in list order wins
	hashed map[string]string
}

// NewCampaignNames builds a registry from an ordered list of candidate names and explicit hash -> name overrides
func NewCampaignNames(data CampaignNamesData) CampaignNames {
	r := &campaignNames{
		known:     append([]string(nil), data.KnownNames...),
		overrides: make(map[string]string, len(data.HashNames)),
		hashed:    make(map[string]string, len(data.KnownNames)),
	}

	for hash, name := range data.HashNames {
		r.overrides[domain.NormalizeHashHex(hash)] = name
	}

	for _, name := range data.KnownNames {
		h := domain.CampaignIDFromName(name).Hex()
		if _, ok := r.hashed[h]; !ok {
			r.hashed[h] = name
		}
	}

	return r
}

// Resolve returns the name of a hex campaign id
func (r *campaignNames) Resolve(hexID string) string {
	h := domain.NormalizeHashHex(hexID)

	if name, ok := r.overrides[h]; ok {
		return name
	}

	if name, ok := r.hashed[h]; ok {
		return name
	}

	prefix := h
	if len(prefix) > unknownPrefixLength {
		prefix = prefix[:unknownPrefixLength]
	}
	return fmt.Sprintf("Unknown (%s...)", prefix)
}

// ResolveID is Resolve for a parsed id
func (r *campaignNames) ResolveID(id domain.CampaignID) string {
	return r.Resolve(id.Hex())
}

// KnownNames returns the candidate names in configuration order
func (r *campaignNames) KnownNames() []string {
	return append([]string(nil), r.known...)
}

// CampaignNamesLoader reads a campaign names registry file
type CampaignNamesLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewCampaignNamesLoader creates a loader reading through the given adapters
func NewCampaignNamesLoader(fs adapter.FileSystem, json adapter.JSON) *CampaignNamesLoader {
	return &CampaignNamesLoader{fs: fs, json: json}
}

// Load reads and parses a registry file
func (l *CampaignNamesLoader) Load(filePath string) (*CampaignNamesData, error) {
	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read campaign names file: %v", domain.ErrConfiguration, err)
	}

	var registryData CampaignNamesData
	if err := l.json.Unmarshal(data, &registryData); err != nil {
		return nil, fmt.Errorf("%w: failed to parse campaign names JSON: %v", domain.ErrConfiguration, err)
	}

	for i, name := range registryData.KnownNames {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: known name %d in %s is empty", domain.ErrConfiguration, i, filePath)
		}
	}

	return &registryData, nil
}
