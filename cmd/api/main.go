package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "loansharc-backend/internal/adapter/http"
	"loansharc-backend/internal/adapter/middleware"
	"loansharc-backend/internal/adapter/repository/mysql"
	"loansharc-backend/internal/config"
	"loansharc-backend/internal/infrastructure/cache"
	"loansharc-backend/internal/infrastructure/db"
	loanUsecase "loansharc-backend/internal/usecase/loanhistory"
	txUsecase "loansharc-backend/internal/usecase/transaction"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	txUC := txUsecase.NewUsecase(mysql.NewTransactionRepository(gdb))
	loanUC := loanUsecase.NewUsecase(mysql.NewLoanHistoryRepository(gdb))

	h := httpadp.NewHandler()
	txH := httpadp.NewTransactionHandler(txUC)
	loanH := httpadp.NewLoanHistoryHandler(loanUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.Idempotency(rdb, logger, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/api/health", h.Health)

	api := e.Group("/api")
	api.GET("/transactions", txH.ListTransactions)
	api.GET("/transactions/:id", txH.GetTransaction)
	api.GET("/users/:address/transactions", txH.ListUserTransactions)
	api.GET("/loans/:loan_id/transactions", txH.ListLoanTransactions)
	api.GET("/loans", loanH.ListLoans)
	api.GET("/users/:address/loans", loanH.ListUserLoans)
	api.POST("/transactions", txH.CreateTransaction, idemp)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
