package discovery_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/airdrop-monitor/internal/discovery"
	"github.com/feral-file/airdrop-monitor/internal/domain"
	"github.com/feral-file/airdrop-monitor/internal/mocks"
	"github.com/feral-file/airdrop-monitor/internal/registry"
)

var (
	contractA = common.HexToAddress("0x824c6A8FB6311379bf8Ba10e90C1843B16E3A4cE")
	contractB = common.HexToAddress("0xCc99690276912F7d965972D01E642dCcE5D2b660")
	token     = common.HexToAddress("0xfaFAd008f017C326B62FbfddA7fb2335A5c82247")
	alice     = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob       = common.HexToAddress("0x2222222222222222222222222222222222222222")

	h1 = domain.CampaignIDFromName("SpaceCoin Airdrop")
	h2 = domain.CampaignIDFromName("Airdrop")
	h3 = domain.CampaignIDFromName("never registered")
)

func rewardsAdded(contract common.Address, id domain.CampaignID, deadline string, block uint64) domain.EventLog {
	return domain.EventLog{
		Contract:    contract,
		Event:       domain.EVENT_REWARDS_ADDED,
		BlockNumber: block,
		TxHash:      "0xtx",
		Params: map[string]string{
			domain.PARAM_CAMPAIGN_NAME_HASH: id.Hex(),
			domain.PARAM_TOKEN:              token.Hex(),
			domain.PARAM_START_DATE:         "1700000000",
			domain.PARAM_DEADLINE:           deadline,
		},
	}
}

func claimed(contract common.Address, user common.Address, id domain.CampaignID, amount string) domain.EventLog {
	return domain.EventLog{
		Contract: contract,
		Event:    domain.EVENT_CLAIMED,
		Params: map[string]string{
			domain.PARAM_USER:               user.Hex(),
			domain.PARAM_CAMPAIGN_NAME_HASH: id.Hex(),
			domain.PARAM_TOTAL_REWARD:       amount,
		},
	}
}

func testNames() registry.CampaignNames {
	return registry.NewCampaignNames(registry.CampaignNamesData{
		KnownNames: []string{"SpaceCoin Airdrop", "Airdrop"},
	})
}

func TestDedupe(t *testing.T) {
	input := []domain.Campaign{
		{Contract: contractA, ID: h1, Deadline: 1},
		{Contract: contractA, ID: h2, Deadline: 2},
		{Contract: contractB, ID: h1, Deadline: 3},
		{Contract: contractA, ID: h1, Deadline: 4},
	}

	deduped := discovery.Dedupe(input)
	require.Len(t, deduped, 3)

	assert.Equal(t, domain.CampaignKey{Contract: contractA, ID: h1}, deduped[0].Key())
	assert.Equal(t, uint64(4), deduped[0].Deadline)
	assert.Equal(t, domain.CampaignKey{Contract: contractA, ID: h2}, deduped[1].Key())
	assert.Equal(t, domain.CampaignKey{Contract: contractB, ID: h1}, deduped[2].Key())

	assert.Equal(t, deduped, discovery.Dedupe(deduped))
	assert.Empty(t, discovery.Dedupe(nil))
}

func TestDistinctIDs(t *testing.T) {
	ids := discovery.DistinctIDs([]domain.Campaign{
		{Contract: contractA, ID: h2},
		{Contract: contractA, ID: h1},
		{Contract: contractB, ID: h2},
	})
	assert.Equal(t, []domain.CampaignID{h2, h1}, ids)
}

func TestCampaignsFromLogs(t *testing.T) {
	upper := rewardsAdded(contractA, h2, "0", 10)
	upper.Params[domain.PARAM_CAMPAIGN_NAME_HASH] = strings.ToUpper(h2.Hex()[2:])

	missingID := rewardsAdded(contractA, h1, "0", 11)
	delete(missingID.Params, domain.PARAM_CAMPAIGN_NAME_HASH)

	badToken := rewardsAdded(contractA, h1, "0", 12)
	badToken.Params[domain.PARAM_TOKEN] = "0x1234"

	badDeadline := rewardsAdded(contractA, h1, "soon", 13)

	missingDates := rewardsAdded(contractB, h3, "", 14)
	delete(missingDates.Params, domain.PARAM_START_DATE)

	logs := []domain.EventLog{
		rewardsAdded(contractA, h1, "1800000000", 9),
		upper,
		missingID,
		badToken,
		badDeadline,
		claimed(contractA, alice, h1, "1"),
		{Contract: contractA, Event: ""},
		missingDates,
	}

	campaigns := discovery.CampaignsFromLogs(logs)
	require.Len(t, campaigns, 3)

	assert.Equal(t, h1, campaigns[0].ID)
	assert.Equal(t, token, campaigns[0].Token)
	assert.Equal(t, uint64(1700000000), campaigns[0].StartDate)
	assert.Equal(t, uint64(1800000000), campaigns[0].Deadline)
	assert.Equal(t, uint64(9), campaigns[0].BlockNumber)

	assert.Equal(t, h2, campaigns[1].ID)

	assert.Equal(t, contractB, campaigns[2].Contract)
	assert.Equal(t, uint64(0), campaigns[2].StartDate)
	assert.Equal(t, uint64(0), campaigns[2].Deadline)
}

func TestClaimsFromLogs(t *testing.T) {
	noHash := claimed(contractB, bob, h1, "5")
	delete(noHash.Params, domain.PARAM_CAMPAIGN_NAME_HASH)

	badUser := claimed(contractA, alice, h1, "1")
	badUser.Params[domain.PARAM_USER] = "nobody"

	logs := []domain.EventLog{
		claimed(contractA, alice, h1, "100000000000000000000"),
		rewardsAdded(contractA, h1, "0", 1),
		noHash,
		badUser,
	}

	all := discovery.ClaimsFromLogs(logs, nil)
	require.Len(t, all, 2)
	assert.Equal(t, alice, all[0].User)
	assert.Equal(t, h1, all[0].CampaignID)
	assert.Equal(t, "100000000000000000000", all[0].TotalReward.String())
	assert.Equal(t, 0, all[0].Fee.Sign())
	assert.True(t, all[1].CampaignID.IsZero())

	onlyBob := discovery.ClaimsFromLogs(logs, []common.Address{bob})
	require.Len(t, onlyBob, 1)
	assert.Equal(t, bob, onlyBob[0].User)
	assert.Equal(t, "5", onlyBob[0].TotalReward.String())
}

func TestParseSource(t *testing.T) {
	for input, expected := range map[string]discovery.Source{
		"":        discovery.SourceAuto,
		"auto":    discovery.SourceAuto,
		" Chain ": discovery.SourceChain,
		"indexer": discovery.SourceIndexer,
	} {
		source, err := discovery.ParseSource(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, source, input)
	}

	_, err := discovery.ParseSource("graph")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestEngine_FromIndexer(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockChain := mocks.NewMockAirdropClient(ctrl)
	mockIndexer := mocks.NewMockBlockscoutClient(ctrl)

	mockIndexer.EXPECT().FetchDecodedLogs(gomock.Any(), contractA).Return([]domain.EventLog{
		rewardsAdded(contractA, h1, "100", 20),
		rewardsAdded(contractA, h3, "100", 19),
		rewardsAdded(contractA, h1, "200", 18),
	}, nil)
	// partial page walk still contributes what was read
	mockIndexer.EXPECT().FetchDecodedLogs(gomock.Any(), contractB).Return([]domain.EventLog{
		rewardsAdded(contractB, h1, "300", 5),
	}, domain.ErrRemoteCall)

	engine := discovery.NewEngine(mockChain, mockIndexer, testNames(), []common.Address{contractA, contractB}, 50000)
	result := engine.FromIndexer(context.Background())

	assert.Equal(t, discovery.SourceIndexer, result.Source)
	assert.False(t, result.Complete())
	assert.Equal(t, []common.Address{contractB}, result.FailedContracts)
	assert.Len(t, result.Logs, 4)

	require.Len(t, result.Campaigns, 3)
	assert.Equal(t, "SpaceCoin Airdrop", result.Campaigns[0].Name)
	assert.Equal(t, uint64(200), result.Campaigns[0].Deadline)
	assert.Equal(t, "Unknown ("+h3.Hex()[:14]+"...)", result.Campaigns[1].Name)
	assert.Equal(t, contractB, result.Campaigns[2].Contract)
}

func TestEngine_Discover(t *testing.T) {
	contracts := []common.Address{contractA, contractB}

	t.Run("auto falls back to chain when every indexer fetch failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockChain := mocks.NewMockAirdropClient(ctrl)
		mockIndexer := mocks.NewMockBlockscoutClient(ctrl)

		mockIndexer.EXPECT().FetchDecodedLogs(gomock.Any(), gomock.Any()).Times(2).Return(nil, domain.ErrRemoteCall)
		mockChain.EXPECT().
			QueryEventLogs(gomock.Any(), contractA, domain.EVENT_REWARDS_ADDED, uint64(70000), uint64(120000)).
			Return([]domain.EventLog{rewardsAdded(contractA, h2, "0", 80000)}, nil)
		mockChain.EXPECT().
			QueryEventLogs(gomock.Any(), contractB, domain.EVENT_REWARDS_ADDED, uint64(70000), uint64(120000)).
			Return(nil, errors.New("rpc down"))

		engine := discovery.NewEngine(mockChain, mockIndexer, testNames(), contracts, 50000)
		result, err := engine.Discover(context.Background(), discovery.SourceAuto, 120000)
		require.NoError(t, err)

		assert.Equal(t, discovery.SourceChain, result.Source)
		assert.Equal(t, uint64(70000), result.FromBlock)
		assert.Equal(t, uint64(120000), result.ToBlock)
		assert.Equal(t, []common.Address{contractB}, result.FailedContracts)
		require.Len(t, result.Campaigns, 1)
		assert.Equal(t, "Airdrop", result.Campaigns[0].Name)
	})

	t.Run("auto keeps an empty indexer result when a contract answered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockChain := mocks.NewMockAirdropClient(ctrl)
		mockIndexer := mocks.NewMockBlockscoutClient(ctrl)

		mockIndexer.EXPECT().FetchDecodedLogs(gomock.Any(), contractA).Return(nil, nil)
		mockIndexer.EXPECT().FetchDecodedLogs(gomock.Any(), contractB).Return(nil, domain.ErrRemoteCall)

		engine := discovery.NewEngine(mockChain, mockIndexer, testNames(), contracts, 50000)
		result, err := engine.Discover(context.Background(), discovery.SourceAuto, 120000)
		require.NoError(t, err)

		assert.Equal(t, discovery.SourceIndexer, result.Source)
		assert.Empty(t, result.Campaigns)
	})

	t.Run("chain range starts at genesis on a young chain", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockChain := mocks.NewMockAirdropClient(ctrl)

		mockChain.EXPECT().LatestBlockHeight(gomock.Any()).Times(0)
		mockChain.EXPECT().
			QueryEventLogs(gomock.Any(), contractA, domain.EVENT_REWARDS_ADDED, uint64(0), uint64(1234)).
			Return(nil, nil)

		engine := discovery.NewEngine(mockChain, nil, testNames(), []common.Address{contractA}, 50000)
		result, err := engine.Discover(context.Background(), discovery.SourceChain, 1234)
		require.NoError(t, err)
		assert.True(t, result.Complete())
		assert.Empty(t, result.Campaigns)
	})

	t.Run("chain range ends at the given height", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockChain := mocks.NewMockAirdropClient(ctrl)

		mockChain.EXPECT().LatestBlockHeight(gomock.Any()).Times(0)
		mockChain.EXPECT().
			QueryEventLogs(gomock.Any(), contractA, domain.EVENT_REWARDS_ADDED, uint64(950), uint64(1000)).
			Return([]domain.EventLog{rewardsAdded(contractA, h1, "0", 990)}, nil)

		engine := discovery.NewEngine(mockChain, nil, testNames(), []common.Address{contractA}, 50)
		result := engine.FromChain(context.Background(), 1000)

		assert.Equal(t, uint64(950), result.FromBlock)
		assert.Equal(t, uint64(1000), result.ToBlock)
		require.Len(t, result.Campaigns, 1)
		assert.Equal(t, "SpaceCoin Airdrop", result.Campaigns[0].Name)
	})

	t.Run("indexer source without indexer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		engine := discovery.NewEngine(mocks.NewMockAirdropClient(ctrl), nil, testNames(), contracts, 50000)
		_, err := engine.Discover(context.Background(), discovery.SourceIndexer, 1000)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}

func TestEngine_Claims(t *testing.T) {
	t.Run("indexer result reuses the fetched logs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		engine := discovery.NewEngine(mocks.NewMockAirdropClient(ctrl), mocks.NewMockBlockscoutClient(ctrl), testNames(), []common.Address{contractA}, 50000)

		result := &discovery.Result{
			Source: discovery.SourceIndexer,
			Logs: []domain.EventLog{
				claimed(contractA, alice, h1, "10"),
				claimed(contractA, bob, h1, "20"),
			},
		}

		claims := engine.Claims(context.Background(), result, []common.Address{alice})
		require.Len(t, claims, 1)
		assert.Equal(t, alice, claims[0].User)
	})

	t.Run("chain result queries claims with a user topic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockChain := mocks.NewMockAirdropClient(ctrl)
		userTopics := []common.Hash{common.BytesToHash(alice.Bytes()), common.BytesToHash(bob.Bytes())}

		mockChain.EXPECT().
			QueryEventLogs(gomock.Any(), contractA, domain.EVENT_CLAIMED, uint64(10), uint64(20), userTopics).
			Return([]domain.EventLog{claimed(contractA, bob, h2, "7")}, nil)
		mockChain.EXPECT().
			QueryEventLogs(gomock.Any(), contractB, domain.EVENT_CLAIMED, uint64(10), uint64(20), userTopics).
			Return(nil, errors.New("timeout"))

		engine := discovery.NewEngine(mockChain, nil, testNames(), []common.Address{contractA, contractB}, 50000)
		claims := engine.Claims(context.Background(), &discovery.Result{Source: discovery.SourceChain, FromBlock: 10, ToBlock: 20}, []common.Address{alice, bob})
		require.Len(t, claims, 1)
		assert.Equal(t, h2, claims[0].CampaignID)
	})
}
