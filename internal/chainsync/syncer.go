package chainsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"loansharc-backend/internal/domain/transaction"
	"loansharc-backend/internal/ledger"
)

// Syncer drives one reconciliation pass: resolve a block range, fetch the
// contract's logs one event kind at a time, decode and dispatch each log.
// There is no persisted checkpoint between runs; every invocation rescans
// its window and leans on the stores' idempotence guards. A lookback
// window shorter than the gap between runs silently drops events.
//
// Events are applied per kind across the whole range, not interleaved
// chronologically across kinds. Within a kind, logs keep node order.
type Syncer struct {
	client   ledger.Client
	handlers *Handlers
	contract string
	lookback int64
	logger   *slog.Logger
}

func NewSyncer(client ledger.Client, handlers *Handlers, contract string, lookback int64, logger *slog.Logger) *Syncer {
	return &Syncer{
		client:   client,
		handlers: handlers,
		contract: contract,
		lookback: lookback,
		logger:   logger,
	}
}

// Run executes one pass. startBlock overrides the default window of
// currentHeight-lookback. Only ledger connectivity failures abort; any
// failure scoped to a single event is logged and skipped.
func (s *Syncer) Run(ctx context.Context, startBlock *int64) error {
	head, err := s.client.CurrentHeight(ctx)
	if err != nil {
		return fmt.Errorf("resolve head: %w", err)
	}

	from := head - s.lookback
	if startBlock != nil {
		from = *startBlock
	}
	if from < 0 {
		from = 0
	}

	s.logger.Info("sync pass", "contract", s.contract, "from", from, "to", head)

	for _, sh := range shapes {
		logs, err := s.client.LogsInRange(ctx, s.contract, sh.topic0, from, head)
		if err != nil {
			return fmt.Errorf("fetch %s logs: %w", sh.kind, err)
		}
		s.logger.Info("fetched logs", "kind", sh.kind, "count", len(logs))
		s.dispatch(ctx, logs)
	}
	return nil
}

// Resync replays handler dispatch for every recognized event in one known
// transaction, bypassing the range scan. Same idempotence and per-event
// isolation rules as Run.
func (s *Syncer) Resync(ctx context.Context, txHash string) error {
	receipt, err := s.client.Receipt(ctx, txHash)
	if err != nil {
		return fmt.Errorf("fetch receipt: %w", err)
	}
	s.dispatch(ctx, receipt.Logs)
	return nil
}

func (s *Syncer) dispatch(ctx context.Context, logs []*ledger.Log) {
	for _, l := range logs {
		ev, matched, err := DecodeEvent(l)
		if err != nil {
			s.logger.Warn("decode failed", "tx", l.TransactionHash, "log_index", l.LogIndex, "err", err)
			continue
		}
		if !matched {
			continue
		}

		if err := s.handlers.Apply(ctx, ev); err != nil {
			if errors.Is(err, transaction.ErrDuplicateTx) {
				s.logger.Debug("event already mirrored", "kind", ev.EventKind(), "tx", l.TransactionHash)
				continue
			}
			s.logger.Warn("apply failed", "kind", ev.EventKind(), "tx", l.TransactionHash, "err", err)
			continue
		}
		s.logger.Info("event applied", "kind", ev.EventKind(), "tx", l.TransactionHash)
	}
}
