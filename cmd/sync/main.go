package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"loansharc-backend/internal/adapter/repository/mysql"
	"loansharc-backend/internal/chainsync"
	"loansharc-backend/internal/config"
	"loansharc-backend/internal/infrastructure/cache"
	"loansharc-backend/internal/infrastructure/db"
	"loansharc-backend/internal/ledger"
)

func main() {
	var (
		startBlock = flag.Int64("start-block", -1, "first block of the scan window (default: head minus lookback)")
		txHash     = flag.String("tx-hash", "", "resync a single transaction by hash instead of scanning a range")
	)
	flag.Parse()

	cfg := config.Load()
	if err := cfg.ValidateSync(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}

	// Sync survives a missing redis; block timestamps just go uncached.
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Warn("redis unavailable, block timestamp cache disabled", "err", err)
		rdb = nil
	}

	client := ledger.NewRPCClient(cfg.RPCURL, logger)
	handlers := chainsync.NewHandlers(
		mysql.NewGormUoW(gdb),
		chainsync.NewBlockTimestamps(client, rdb),
		logger,
	)
	syncer := chainsync.NewSyncer(client, handlers, cfg.ContractAddress, cfg.LookbackBlocks, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *txHash != "" {
		if err := syncer.Resync(ctx, *txHash); err != nil {
			log.Fatalf("resync %s: %v", *txHash, err)
		}
		return
	}

	var start *int64
	if *startBlock >= 0 {
		start = startBlock
	}
	if err := syncer.Run(ctx, start); err != nil {
		log.Fatalf("sync: %v", err)
	}
}
