package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

var (
	// ErrUnavailable wraps any transport or node failure. It is fatal to
	// a whole sync run; retrying is the scheduler's job, not ours.
	ErrUnavailable = errors.New("ledger rpc unavailable")
	// ErrTxNotFound means the node has no receipt for the hash.
	ErrTxNotFound = errors.New("transaction not found")
)

// Client is the read surface the sync engine consumes.
type Client interface {
	CurrentHeight(ctx context.Context) (int64, error)
	LogsInRange(ctx context.Context, contract, topic0 string, fromBlock, toBlock int64) ([]*Log, error)
	Receipt(ctx context.Context, txHash string) (*Receipt, error)
	BlockTimestamp(ctx context.Context, blockNumber int64) (time.Time, error)
}

type RPCClient struct {
	httpClient *http.Client
	rpcURL     string
	requestID  atomic.Int64
	logger     *slog.Logger
}

var _ Client = (*RPCClient)(nil)

func NewRPCClient(rpcURL string, logger *slog.Logger) *RPCClient {
	return &RPCClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		rpcURL:     rpcURL,
		logger:     logger,
	}
}

func (c *RPCClient) call(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	id := int(c.requestID.Add(1))
	req := request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: http request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http status %d: %s", ErrUnavailable, resp.StatusCode, string(respBody))
	}

	var rpcResp response
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("%w: unmarshal response: %v", ErrUnavailable, err)
	}

	if rpcResp.Error != nil {
		return nil, fmt.Errorf("%w: %s (code %d)", ErrUnavailable, rpcResp.Error.Message, rpcResp.Error.Code)
	}

	return rpcResp.Result, nil
}
