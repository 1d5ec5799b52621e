package blockscout

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/airdrop-monitor/internal/adapter"
	"github.com/feral-file/airdrop-monitor/internal/domain"
	"github.com/feral-file/airdrop-monitor/internal/logger"
)

// Client defines the interface for Blockscout v2 API operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/blockscout_client.go -package=mocks -mock_names=Client=MockBlockscoutClient
type Client interface {
	// FetchDecodedLogs returns every log of the contract in the order the API pages them.
	// When a page fails the logs collected so far are returned together with the error.
	FetchDecodedLogs(ctx context.Context, contract common.Address) ([]domain.EventLog, error)

	// Ping checks that the API answers
	Ping(ctx context.Context) error
}

// BlockscoutClient implements Client
type BlockscoutClient struct {
	httpClient adapter.HTTPClient
	apiURL     string
	json       adapter.JSON
}

// NewClient creates a new Blockscout client.
// apiURL is the v2 API root, e.g. https://creditcoin.blockscout.com/api/v2
func NewClient(httpClient adapter.HTTPClient, apiURL string, json adapter.JSON) Client {
	return &BlockscoutClient{
		httpClient: httpClient,
		apiURL:     strings.TrimRight(apiURL, "/"),
		json:       json,
	}
}

// FetchDecodedLogs follows next_page_params until the API stops returning one.
// A cursor that was already requested also ends the walk.
func (c *BlockscoutClient) FetchDecodedLogs(ctx context.Context, contract common.Address) ([]domain.EventLog, error) {
	baseURL := fmt.Sprintf("%s/addresses/%s/logs", c.apiURL, contract.Hex())

	var logs []domain.EventLog
	seen := make(map[string]struct{})
	cursor := ""
	for page := 1; ; page++ {
		url := baseURL
		if cursor != "" {
			url = baseURL + "?" + cursor
		}

		result, err := c.fetchPage(ctx, url)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to fetch logs page, results may be incomplete",
				zap.Error(err),
				zap.String("contract", contract.Hex()),
				zap.Int("page", page),
				zap.Int("collected", len(logs)))
			return logs, fmt.Errorf("%w: failed to fetch logs page %d of %s: %v", domain.ErrRemoteCall, page, contract.Hex(), err)
		}

		for _, item := range result.Items {
			logs = append(logs, toEventLog(contract, item))
		}

		seen[cursor] = struct{}{}
		cursor = encodeCursor(result.NextPageParams)
		if cursor == "" {
			break
		}
		if _, repeated := seen[cursor]; repeated {
			logger.WarnCtx(ctx, "Logs cursor repeated, stopping pagination",
				zap.String("contract", contract.Hex()),
				zap.Int("page", page))
			break
		}
	}

	logger.DebugCtx(ctx, "Fetched contract logs",
		zap.String("contract", contract.Hex()),
		zap.Int("logs", len(logs)))

	return logs, nil
}

func (c *BlockscoutClient) fetchPage(ctx context.Context, url string) (*LogsPage, error) {
	body, err := c.httpClient.GetBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	var page LogsPage
	if err := c.json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal logs page: %w", err)
	}

	return &page, nil
}

// toEventLog flattens a log item. Items the API could not decode keep an empty event name.
func toEventLog(contract common.Address, item LogItem) domain.EventLog {
	event := domain.EventLog{
		Contract:    contract,
		Event:       item.Decoded.EventName(),
		BlockNumber: item.BlockNumber,
		TxHash:      item.TransactionHash,
		Params:      make(map[string]string),
	}

	if item.Decoded != nil {
		for _, p := range item.Decoded.Parameters {
			if !p.Value.Valid {
				continue
			}
			event.Params[p.Name] = p.Value.Text
		}
	}

	return event
}

// Ping checks that the API answers
func (c *BlockscoutClient) Ping(ctx context.Context) error {
	if _, err := c.httpClient.GetBytes(ctx, c.apiURL+"/stats"); err != nil {
		return fmt.Errorf("%w: blockscout API at %s: %v", domain.ErrRemoteUnavailable, c.apiURL, err)
	}
	return nil
}
