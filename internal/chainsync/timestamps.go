package chainsync

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"loansharc-backend/internal/ledger"

	"github.com/redis/go-redis/v9"
)

const blockTimestampTTL = 24 * time.Hour

// BlockTimestamps resolves block timestamps for events that do not embed
// one, caching results in redis so replayed ranges don't re-query the node
// for the same blocks. A nil redis client degrades to straight lookups.
type BlockTimestamps struct {
	client ledger.Client
	rdb    *redis.Client
}

func NewBlockTimestamps(client ledger.Client, rdb *redis.Client) *BlockTimestamps {
	return &BlockTimestamps{client: client, rdb: rdb}
}

func (b *BlockTimestamps) key(blockNumber int64) string {
	return "blkts:" + strconv.FormatInt(blockNumber, 10)
}

func (b *BlockTimestamps) Resolve(ctx context.Context, blockNumber int64) (time.Time, error) {
	if b.rdb != nil {
		if v, err := b.rdb.Get(ctx, b.key(blockNumber)).Result(); err == nil {
			if unix, perr := strconv.ParseInt(v, 10, 64); perr == nil {
				return time.Unix(unix, 0).UTC(), nil
			}
		}
	}

	ts, err := b.client.BlockTimestamp(ctx, blockNumber)
	if err != nil {
		return time.Time{}, fmt.Errorf("block %d timestamp: %w", blockNumber, err)
	}

	if b.rdb != nil {
		// Best effort; a cache write failure never fails the event.
		_ = b.rdb.Set(ctx, b.key(blockNumber), strconv.FormatInt(ts.Unix(), 10), blockTimestampTTL).Err()
	}
	return ts, nil
}
