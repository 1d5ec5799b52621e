package wallet

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/feral-file/airdrop-monitor/internal/adapter"
	"github.com/feral-file/airdrop-monitor/internal/domain"
)

// defaultNameLength is the number of address characters used to name an unnamed wallet
const defaultNameLength = 10

// Loader builds the set of monitored wallets
type Loader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewLoader creates a wallet loader reading through the given adapters
func NewLoader(fs adapter.FileSystem, json adapter.JSON) *Loader {
	return &Loader{fs: fs, json: json}
}

// Load returns the single override wallet when address is set, otherwise the wallets of the file at path
func (l *Loader) Load(path, address, name string) (*domain.WalletSet, error) {
	if strings.TrimSpace(address) != "" {
		return Single(address, name)
	}
	return l.LoadFile(path)
}

// LoadFile reads a JSON object of name -> address, keeping the order of the file.
// A name repeated in the file keeps its first position and its last address.
func (l *Loader) LoadFile(path string) (*domain.WalletSet, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: no wallet file or address given", domain.ErrConfiguration)
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: wallet file not found: %s (create it or use --address to check a single address)", domain.ErrConfiguration, path)
		}
		return nil, fmt.Errorf("%w: failed to read wallet file %s: %v", domain.ErrConfiguration, path, err)
	}

	entries := orderedmap.New[string, string]()
	if err := l.json.Unmarshal(data, entries); err != nil {
		return nil, fmt.Errorf("%w: invalid wallet file %s, expected an object of name to address: %v", domain.ErrConfiguration, path, err)
	}

	wallets := domain.NewWalletSet()
	for pair := entries.Oldest(); pair != nil; pair = pair.Next() {
		addr, err := ParseAddress(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("wallet %q in %s: %w", pair.Key, path, err)
		}
		wallets.Add(pair.Key, addr)
	}

	if wallets.Len() == 0 {
		return nil, fmt.Errorf("%w: wallet file %s has no wallets", domain.ErrConfiguration, path)
	}

	return wallets, nil
}

// Single returns a set holding one wallet.
// Without a name the wallet is named after the first characters of its address.
func Single(address, name string) (*domain.WalletSet, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		name = DefaultName(strings.TrimSpace(address))
	}

	wallets := domain.NewWalletSet()
	wallets.Add(name, addr)
	return wallets, nil
}

// DefaultName is the display name of an unnamed wallet
func DefaultName(address string) string {
	if len(address) <= defaultNameLength {
		return address
	}
	return address[:defaultNameLength] + "..."
}

// ParseAddress validates a hex address and returns its checksummed form
func ParseAddress(address string) (common.Address, error) {
	trimmed := strings.TrimSpace(address)
	if !common.IsHexAddress(trimmed) {
		return common.Address{}, fmt.Errorf("%w: invalid address %q", domain.ErrConfiguration, address)
	}
	return common.HexToAddress(trimmed), nil
}
