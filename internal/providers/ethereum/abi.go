package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

// redeemableAirdropABI is the read-only subset of the RedeemableAirdrop contract interface
const redeemableAirdropABI = `[
	{"inputs":[{"internalType":"bytes32","name":"campaignNameHash","type":"bytes32"},{"internalType":"address","name":"wallet","type":"address"}],
	 "name":"rewardInfoByHash",
	 "outputs":[{"internalType":"uint120","name":"","type":"uint120"},{"internalType":"uint120","name":"","type":"uint120"},{"internalType":"bool","name":"","type":"bool"},{"internalType":"bool","name":"","type":"bool"}],
	 "stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"bytes32","name":"campaignNameHash","type":"bytes32"}],
	 "name":"campaignInfoByHash",
	 "outputs":[{"internalType":"address","name":"","type":"address"},{"internalType":"uint64","name":"","type":"uint64"},{"internalType":"uint64","name":"","type":"uint64"},{"internalType":"bool","name":"","type":"bool"},{"internalType":"uint256","name":"","type":"uint256"},{"internalType":"uint256","name":"","type":"uint256"}],
	 "stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"token","type":"address"}],
	 "name":"tokenCampaigns",
	 "outputs":[{"internalType":"bytes32[]","name":"","type":"bytes32[]"}],
	 "stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"token","type":"address"},{"internalType":"address","name":"wallet","type":"address"}],
	 "name":"allRewardInfo",
	 "outputs":[{"internalType":"bytes32[]","name":"","type":"bytes32[]"},{"internalType":"uint120[]","name":"","type":"uint120[]"},{"internalType":"uint120[]","name":"","type":"uint120[]"},{"internalType":"bool[]","name":"","type":"bool[]"},{"internalType":"bool[]","name":"","type":"bool[]"}],
	 "stateMutability":"view","type":"function"},
	{"anonymous":false,
	 "inputs":[{"indexed":true,"internalType":"bytes32","name":"campaignNameHash","type":"bytes32"},{"indexed":true,"internalType":"address","name":"token","type":"address"},{"indexed":false,"internalType":"uint64","name":"startDate","type":"uint64"},{"indexed":false,"internalType":"uint64","name":"deadline","type":"uint64"}],
	 "name":"RewardsAdded","type":"event"},
	{"anonymous":false,
	 "inputs":[{"indexed":true,"internalType":"address","name":"user","type":"address"},{"indexed":true,"internalType":"bytes32","name":"campaignNameHash","type":"bytes32"},{"indexed":false,"internalType":"uint120","name":"totalReward","type":"uint120"},{"indexed":false,"internalType":"uint256","name":"fee","type":"uint256"}],
	 "name":"Claimed","type":"event"}
]`

const (
	methodRewardInfoByHash   = "rewardInfoByHash"
	methodCampaignInfoByHash = "campaignInfoByHash"
	methodTokenCampaigns     = "tokenCampaigns"
	methodAllRewardInfo      = "allRewardInfo"
)

// Event signatures
var (
	// RewardsAdded(bytes32 indexed campaignNameHash, address indexed token, uint64 startDate, uint64 deadline)
	rewardsAddedEventSignature = crypto.Keccak256Hash([]byte("RewardsAdded(bytes32,address,uint64,uint64)"))

	// Claimed(address indexed user, bytes32 indexed campaignNameHash, uint120 totalReward, uint256 fee)
	claimedEventSignature = crypto.Keccak256Hash([]byte("Claimed(address,bytes32,uint120,uint256)"))
)

var airdropABI = mustParseABI(redeemableAirdropABI)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic("invalid airdrop ABI: " + err.Error())
	}
	return parsed
}
