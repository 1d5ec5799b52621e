package domain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// CampaignKey is the identity of a discovered campaign.
// The same CampaignID may exist independently on several contracts.
type CampaignKey struct {
	Contract common.Address
	ID       CampaignID
}

// CampaignInfo is a point-in-time snapshot of a campaign read from the contract
type CampaignInfo struct {
	Token        common.Address `json:"token"`
	StartDate    uint64         `json:"start_date"`
	Deadline     uint64         `json:"deadline"`
	Reclaimed    bool           `json:"reclaimed"`
	TotalAmount  *big.Int       `json:"total_amount"`
	TotalClaimed *big.Int       `json:"total_claimed"`
}

// Exists reports whether the contract knows the campaign.
// Unknown campaigns are returned by the contract with a zero token address.
func (c *CampaignInfo) Exists() bool {
	return c != nil && c.Token != (common.Address{})
}

// Campaign is a campaign discovered from a RewardsAdded event
type Campaign struct {
	Contract    common.Address `json:"contract"`
	ID          CampaignID     `json:"id"`
	Name        string         `json:"name"`
	Token       common.Address `json:"token"`
	StartDate   uint64         `json:"start_date"`
	Deadline    uint64         `json:"deadline"`
	BlockNumber uint64         `json:"block_number"`
	TxHash      string         `json:"tx_hash"`

	// Info is filled when the campaign state was read from the contract
	Info *CampaignInfo `json:"info,omitempty"`
}

// Key returns the deduplication key of the campaign
func (c Campaign) Key() CampaignKey {
	return CampaignKey{Contract: c.Contract, ID: c.ID}
}

// RewardInfo is the reward state of one wallet in one campaign
type RewardInfo struct {
	TotalReward                    *big.Int
	BonusReward                    *big.Int
	Claimed                        bool
	RequiresAdditionalVerification bool
}

// TokenReward is one entry of the allRewardInfo result
type TokenReward struct {
	CampaignID CampaignID
	RewardInfo
}

// WalletReward is the reward record of a (contract, campaign, wallet) triple
type WalletReward struct {
	WalletName                     string         `json:"wallet_name"`
	WalletAddress                  common.Address `json:"wallet_address"`
	Contract                       common.Address `json:"contract"`
	CampaignID                     CampaignID     `json:"campaign_id"`
	TotalReward                    *big.Int       `json:"total_reward"`
	BonusReward                    *big.Int       `json:"bonus_reward"`
	Claimed                        bool           `json:"claimed"`
	RequiresAdditionalVerification bool           `json:"requires_additional_verification"`
}

// HasReward reports whether the wallet has a strictly positive allocation
func (r WalletReward) HasReward() bool {
	return r.TotalReward != nil && r.TotalReward.Sign() > 0
}

// EventLog is a decoded contract event.
// Params holds every event argument rendered as a string: hashes as lowercase hex,
// addresses as checksummed hex and integers in base 10.
type EventLog struct {
	Contract    common.Address
	Event       string
	BlockNumber uint64
	TxHash      string
	Params      map[string]string
}

// Param returns the trimmed value of an event argument
func (l EventLog) Param(name string) string {
	return strings.TrimSpace(l.Params[name])
}

// ClaimEvent is a decoded Claimed event
type ClaimEvent struct {
	Contract    common.Address `json:"contract"`
	User        common.Address `json:"user"`
	CampaignID  CampaignID     `json:"campaign_id"`
	TotalReward *big.Int       `json:"total_reward"`
	Fee         *big.Int       `json:"fee"`
	BlockNumber uint64         `json:"block_number"`
	TxHash      string         `json:"tx_hash"`
}

// Wallet is a monitored wallet
type Wallet struct {
	Name    string         `json:"name"`
	Address common.Address `json:"address"`
}

// WalletSet is an ordered name -> address mapping.
// Adding an existing name replaces its address and keeps its position.
type WalletSet struct {
	entries *orderedmap.OrderedMap[string, common.Address]
}

// NewWalletSet creates an empty wallet set
func NewWalletSet() *WalletSet {
	return &WalletSet{entries: orderedmap.New[string, common.Address]()}
}

// Add adds or replaces a wallet
func (s *WalletSet) Add(name string, address common.Address) {
	s.entries.Set(name, address)
}

// Len returns the number of wallets
func (s *WalletSet) Len() int {
	if s == nil {
		return 0
	}
	return s.entries.Len()
}

// Get returns the wallet with the given name
func (s *WalletSet) Get(name string) (Wallet, bool) {
	address, ok := s.entries.Get(name)
	if !ok {
		return Wallet{}, false
	}
	return Wallet{Name: name, Address: address}, true
}

// Wallets returns the wallets in insertion order
func (s *WalletSet) Wallets() []Wallet {
	if s == nil {
		return nil
	}
	wallets := make([]Wallet, 0, s.entries.Len())
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		wallets = append(wallets, Wallet{Name: pair.Key, Address: pair.Value})
	}
	return wallets
}
