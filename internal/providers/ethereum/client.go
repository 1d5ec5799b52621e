package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/airdrop-monitor/internal/adapter"
	"github.com/feral-file/airdrop-monitor/internal/domain"
	"github.com/feral-file/airdrop-monitor/internal/logger"
)

// maxLogRange is the widest block range requested in a single eth_getLogs call
const maxLogRange = uint64(10_000)

// AirdropClient reads RedeemableAirdrop contracts over EVM JSON-RPC.
// Every method performs exactly one attempt per remote call.
//
//go:generate mockgen -source=client.go -destination=../../mocks/airdrop_client.go -package=mocks -mock_names=AirdropClient=MockAirdropClient
type AirdropClient interface {
	// RewardInfoByHash reads the reward of a wallet in a campaign
	RewardInfoByHash(ctx context.Context, contract common.Address, id domain.CampaignID, wallet common.Address) (*domain.RewardInfo, error)

	// RewardInfo hashes the campaign name and reads the reward of a wallet in the campaign
	RewardInfo(ctx context.Context, contract common.Address, name string, wallet common.Address) (*domain.RewardInfo, error)

	// CampaignInfoByHash reads the state of a campaign
	CampaignInfoByHash(ctx context.Context, contract common.Address, id domain.CampaignID) (*domain.CampaignInfo, error)

	// CampaignInfo hashes the campaign name and reads the state of the campaign
	CampaignInfo(ctx context.Context, contract common.Address, name string) (*domain.CampaignInfo, error)

	// TokenCampaigns lists the campaigns distributing the given token
	TokenCampaigns(ctx context.Context, contract common.Address, token common.Address) ([]domain.CampaignID, error)

	// AllRewardInfo reads the rewards of a wallet in every campaign of the given token
	AllRewardInfo(ctx context.Context, contract common.Address, token common.Address, wallet common.Address) ([]domain.TokenReward, error)

	// QueryEventLogs returns the decoded RewardsAdded or Claimed events of a contract in [fromBlock, toBlock].
	// topics optionally restricts the indexed arguments following the event signature.
	QueryEventLogs(ctx context.Context, contract common.Address, event string, fromBlock, toBlock uint64, topics ...[]common.Hash) ([]domain.EventLog, error)

	// LatestBlockHeight returns the number of the latest block
	LatestBlockHeight(ctx context.Context) (uint64, error)

	// IsReachable reports whether the node answers
	IsReachable(ctx context.Context) bool

	// Close closes the connection
	Close()
}

type airdropClient struct {
	client adapter.EthClient
}

func NewClient(client adapter.EthClient) AirdropClient {
	return &airdropClient{client: client}
}

// call packs the arguments, executes a read-only call and unpacks the outputs
func (c *airdropClient) call(ctx context.Context, contract common.Address, method string, args ...interface{}) (*outputs, error) {
	data, err := airdropABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to pack %s: %v", domain.ErrDataShape, method, err)
	}

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contract,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s on %s: %v", domain.ErrRemoteCall, method, contract.Hex(), err)
	}

	values, err := airdropABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unpack %s from %s: %v", domain.ErrDataShape, method, contract.Hex(), err)
	}

	return &outputs{name: method, values: values}, nil
}

// RewardInfoByHash reads the reward of a wallet in a campaign
func (c *airdropClient) RewardInfoByHash(ctx context.Context, contract common.Address, id domain.CampaignID, wallet common.Address) (*domain.RewardInfo, error) {
	out, err := c.call(ctx, contract, methodRewardInfoByHash, [32]byte(id), wallet)
	if err != nil {
		return nil, err
	}

	info := &domain.RewardInfo{
		TotalReward:                    value[*big.Int](out, 0),
		BonusReward:                    value[*big.Int](out, 1),
		Claimed:                        value[bool](out, 2),
		RequiresAdditionalVerification: value[bool](out, 3),
	}
	if out.err != nil {
		return nil, out.err
	}

	return info, nil
}

// RewardInfo hashes the campaign name and reads the reward of a wallet in the campaign
func (c *airdropClient) RewardInfo(ctx context.Context, contract common.Address, name string, wallet common.Address) (*domain.RewardInfo, error) {
	return c.RewardInfoByHash(ctx, contract, domain.CampaignIDFromName(name), wallet)
}

// CampaignInfoByHash reads the state of a campaign
func (c *airdropClient) CampaignInfoByHash(ctx context.Context, contract common.Address, id domain.CampaignID) (*domain.CampaignInfo, error) {
	out, err := c.call(ctx, contract, methodCampaignInfoByHash, [32]byte(id))
	if err != nil {
		return nil, err
	}

	info := &domain.CampaignInfo{
		Token:        value[common.Address](out, 0),
		StartDate:    value[uint64](out, 1),
		Deadline:     value[uint64](out, 2),
		Reclaimed:    value[bool](out, 3),
		TotalAmount:  value[*big.Int](out, 4),
		TotalClaimed: value[*big.Int](out, 5),
	}
	if out.err != nil {
		return nil, out.err
	}

	return info, nil
}

// CampaignInfo hashes the campaign name and reads the state of the campaign
func (c *airdropClient) CampaignInfo(ctx context.Context, contract common.Address, name string) (*domain.CampaignInfo, error) {
	return c.CampaignInfoByHash(ctx, contract, domain.CampaignIDFromName(name))
}

// TokenCampaigns lists the campaigns distributing the given token
func (c *airdropClient) TokenCampaigns(ctx context.Context, contract common.Address, token common.Address) ([]domain.CampaignID, error) {
	out, err := c.call(ctx, contract, methodTokenCampaigns, token)
	if err != nil {
		return nil, err
	}

	hashes := value[[][32]byte](out, 0)
	if out.err != nil {
		return nil, out.err
	}

	ids := make([]domain.CampaignID, 0, len(hashes))
	for _, h := range hashes {
		ids = append(ids, domain.CampaignID(h))
	}
	return ids, nil
}

// AllRewardInfo reads the rewards of a wallet in every campaign of the given token
func (c *airdropClient) AllRewardInfo(ctx context.Context, contract common.Address, token common.Address, wallet common.Address) ([]domain.TokenReward, error) {
	out, err := c.call(ctx, contract, methodAllRewardInfo, token, wallet)
	if err != nil {
		return nil, err
	}

	hashes := value[[][32]byte](out, 0)
	totals := value[[]*big.Int](out, 1)
	bonuses := value[[]*big.Int](out, 2)
	claimed := value[[]bool](out, 3)
	verification := value[[]bool](out, 4)
	if out.err != nil {
		return nil, out.err
	}

	n := len(hashes)
	if len(totals) != n || len(bonuses) != n || len(claimed) != n || len(verification) != n {
		return nil, fmt.Errorf("%w: %s returned arrays of different lengths", domain.ErrDataShape, methodAllRewardInfo)
	}

	rewards := make([]domain.TokenReward, 0, n)
	for i := range hashes {
		rewards = append(rewards, domain.TokenReward{
			CampaignID: domain.CampaignID(hashes[i]),
			RewardInfo: domain.RewardInfo{
				TotalReward:                    totals[i],
				BonusReward:                    bonuses[i],
				Claimed:                        claimed[i],
				RequiresAdditionalVerification: verification[i],
			},
		})
	}
	return rewards, nil
}

// QueryEventLogs returns the decoded events of a contract in [fromBlock, toBlock].
// The range is split into windows of maxLogRange blocks, each requested once.
func (c *airdropClient) QueryEventLogs(ctx context.Context, contract common.Address, event string, fromBlock, toBlock uint64, topics ...[]common.Hash) ([]domain.EventLog, error) {
	var signature common.Hash
	switch event {
	case domain.EVENT_REWARDS_ADDED:
		signature = rewardsAddedEventSignature
	case domain.EVENT_CLAIMED:
		signature = claimedEventSignature
	default:
		return nil, fmt.Errorf("%w: unsupported event %q", domain.ErrDataShape, event)
	}

	if fromBlock > toBlock {
		return nil, nil
	}

	query := ethereum.FilterQuery{
		Addresses: []common.Address{contract},
		Topics:    append([][]common.Hash{{signature}}, topics...),
	}

	var events []domain.EventLog
	for from := fromBlock; ; {
		to := toBlock
		if toBlock-from >= maxLogRange {
			to = from + maxLogRange - 1
		}

		windowQuery := query
		windowQuery.FromBlock = new(big.Int).SetUint64(from)
		windowQuery.ToBlock = new(big.Int).SetUint64(to)

		logs, err := c.client.FilterLogs(ctx, windowQuery)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to get %s logs for range %d-%d: %v", domain.ErrRemoteCall, event, from, to, err)
		}

		for _, vLog := range logs {
			if vLog.Removed {
				continue
			}
			parsed, err := parseEventLog(vLog)
			if err != nil {
				logger.WarnCtx(ctx, "Skipping malformed event log",
					zap.Error(err),
					zap.String("contract", contract.Hex()),
					zap.String("txHash", vLog.TxHash.Hex()))
				continue
			}
			events = append(events, *parsed)
		}

		if to == toBlock {
			break
		}
		from = to + 1
	}

	return events, nil
}

// parseEventLog decodes a RewardsAdded or Claimed log into its named arguments
func parseEventLog(vLog types.Log) (*domain.EventLog, error) {
	if len(vLog.Topics) == 0 {
		return nil, fmt.Errorf("%w: log without topics", domain.ErrDataShape)
	}

	event := &domain.EventLog{
		Contract:    vLog.Address,
		BlockNumber: vLog.BlockNumber,
		TxHash:      vLog.TxHash.Hex(),
		Params:      make(map[string]string),
	}

	switch vLog.Topics[0] {
	case rewardsAddedEventSignature:
		if len(vLog.Topics) != 3 {
			return nil, fmt.Errorf("%w: invalid RewardsAdded event: expected 3 topics, got %d", domain.ErrDataShape, len(vLog.Topics))
		}
		values, err := airdropABI.Unpack(domain.EVENT_REWARDS_ADDED, vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid RewardsAdded data: %v", domain.ErrDataShape, err)
		}
		out := &outputs{name: domain.EVENT_REWARDS_ADDED, values: values}
		startDate := value[uint64](out, 0)
		deadline := value[uint64](out, 1)
		if out.err != nil {
			return nil, out.err
		}

		event.Event = domain.EVENT_REWARDS_ADDED
		event.Params[domain.PARAM_CAMPAIGN_NAME_HASH] = domain.NormalizeHashHex(vLog.Topics[1].Hex())
		event.Params[domain.PARAM_TOKEN] = common.BytesToAddress(vLog.Topics[2].Bytes()).Hex()
		event.Params[domain.PARAM_START_DATE] = strconv.FormatUint(startDate, 10)
		event.Params[domain.PARAM_DEADLINE] = strconv.FormatUint(deadline, 10)

	case claimedEventSignature:
		if len(vLog.Topics) != 3 {
			return nil, fmt.Errorf("%w: invalid Claimed event: expected 3 topics, got %d", domain.ErrDataShape, len(vLog.Topics))
		}
		values, err := airdropABI.Unpack(domain.EVENT_CLAIMED, vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid Claimed data: %v", domain.ErrDataShape, err)
		}
		out := &outputs{name: domain.EVENT_CLAIMED, values: values}
		totalReward := value[*big.Int](out, 0)
		fee := value[*big.Int](out, 1)
		if out.err != nil {
			return nil, out.err
		}

		event.Event = domain.EVENT_CLAIMED
		event.Params[domain.PARAM_USER] = common.BytesToAddress(vLog.Topics[1].Bytes()).Hex()
		event.Params[domain.PARAM_CAMPAIGN_NAME_HASH] = domain.NormalizeHashHex(vLog.Topics[2].Hex())
		event.Params[domain.PARAM_TOTAL_REWARD] = totalReward.String()
		event.Params[domain.PARAM_FEE] = fee.String()

	default:
		return nil, fmt.Errorf("%w: unknown event signature %s", domain.ErrDataShape, vLog.Topics[0].Hex())
	}

	return event, nil
}

// LatestBlockHeight returns the number of the latest block
func (c *airdropClient) LatestBlockHeight(ctx context.Context) (uint64, error) {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get latest block: %v", domain.ErrRemoteCall, err)
	}
	if header == nil || header.Number == nil {
		return 0, fmt.Errorf("%w: latest block header without number", domain.ErrDataShape)
	}
	return header.Number.Uint64(), nil
}

// IsReachable reports whether the node answers a chain id request
func (c *airdropClient) IsReachable(ctx context.Context) bool {
	chainID, err := c.client.ChainID(ctx)
	if err != nil {
		logger.DebugCtx(ctx, "RPC node is not reachable", zap.Error(err))
		return false
	}
	logger.DebugCtx(ctx, "RPC node is reachable", zap.String("chainID", chainID.String()))
	return true
}

// Close closes the connection
func (c *airdropClient) Close() {
	c.client.Close()
}
