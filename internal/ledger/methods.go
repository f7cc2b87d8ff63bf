package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

func (c *RPCClient) CurrentHeight(ctx context.Context) (int64, error) {
	result, err := c.call(ctx, "eth_blockNumber", []interface{}{})
	if err != nil {
		return 0, fmt.Errorf("eth_blockNumber: %w", err)
	}

	var hexNum string
	if err := json.Unmarshal(result, &hexNum); err != nil {
		return 0, fmt.Errorf("unmarshal block number: %w", err)
	}

	height, err := ParseHexInt64(hexNum)
	if err != nil {
		return 0, fmt.Errorf("parse block number: %w", err)
	}
	return height, nil
}

// LogsInRange fetches the contract's logs for one event signature across
// [fromBlock, toBlock], in the order the node returns them.
func (c *RPCClient) LogsInRange(ctx context.Context, contract, topic0 string, fromBlock, toBlock int64) ([]*Log, error) {
	filter := logFilter{
		FromBlock: formatHexInt64(fromBlock),
		ToBlock:   formatHexInt64(toBlock),
		Address:   contract,
		Topics:    [][]string{{topic0}},
	}
	result, err := c.call(ctx, "eth_getLogs", []interface{}{filter})
	if err != nil {
		return nil, fmt.Errorf("eth_getLogs: %w", err)
	}

	var logs []*Log
	if err := json.Unmarshal(result, &logs); err != nil {
		return nil, fmt.Errorf("unmarshal logs: %w", err)
	}
	return logs, nil
}

func (c *RPCClient) Receipt(ctx context.Context, txHash string) (*Receipt, error) {
	result, err := c.call(ctx, "eth_getTransactionReceipt", []interface{}{txHash})
	if err != nil {
		return nil, fmt.Errorf("eth_getTransactionReceipt(%s): %w", txHash, err)
	}
	if string(result) == "null" {
		return nil, fmt.Errorf("%w: %s", ErrTxNotFound, txHash)
	}

	var receipt Receipt
	if err := json.Unmarshal(result, &receipt); err != nil {
		return nil, fmt.Errorf("unmarshal receipt: %w", err)
	}
	return &receipt, nil
}

func (c *RPCClient) BlockTimestamp(ctx context.Context, blockNumber int64) (time.Time, error) {
	params := []interface{}{formatHexInt64(blockNumber), false}
	result, err := c.call(ctx, "eth_getBlockByNumber", params)
	if err != nil {
		return time.Time{}, fmt.Errorf("eth_getBlockByNumber(%d): %w", blockNumber, err)
	}
	if string(result) == "null" {
		return time.Time{}, fmt.Errorf("block %d not found", blockNumber)
	}

	var b block
	if err := json.Unmarshal(result, &b); err != nil {
		return time.Time{}, fmt.Errorf("unmarshal block: %w", err)
	}
	ts, err := ParseHexInt64(b.Timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse block timestamp: %w", err)
	}
	return time.Unix(ts, 0).UTC(), nil
}

func ParseHexInt64(value string) (int64, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return 0, fmt.Errorf("empty hex value")
	}
	raw = strings.TrimPrefix(strings.ToLower(raw), "0x")
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(raw, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse hex %q: %w", value, err)
	}
	return int64(parsed), nil
}

func formatHexInt64(value int64) string {
	return fmt.Sprintf("0x%x", value)
}
