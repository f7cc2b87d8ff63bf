package mysql

import (
	"testing"
	"time"

	loanDomain "loansharc-backend/internal/domain/loanhistory"
	txDomain "loansharc-backend/internal/domain/transaction"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with both mirror tables.
// TranslateError must be on so duplicate-key detection matches production.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&txDomain.Record{}, &loanDomain.Loan{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func strptr(s string) *string { return &s }
func u64ptr(n uint64) *uint64 { return &n }
func i64ptr(n int64) *int64   { return &n }

func makeRecord(txHash string, loanID uint64) *txDomain.Record {
	return &txDomain.Record{
		UserAddress:          "0xabc0000000000000000000000000000000000001",
		Type:                 txDomain.TypeRepay,
		Amount:               decimal.RequireFromString("1000.000000"),
		Currency:             "USDC",
		LoanID:               u64ptr(loanID),
		TxHash:               strptr(txHash),
		BlockNumber:          i64ptr(120),
		TransactionTimestamp: time.Now().UTC(),
		Status:               txDomain.StatusConfirmed,
	}
}

func makeLoan(loanID uint64, user string) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:        loanID,
		UserAddress:   user,
		Principal:     decimal.NewFromInt(5000),
		ServiceFee:    decimal.NewFromInt(500),
		TotalOwed:     decimal.NewFromInt(5500),
		AmountRepaid:  decimal.Zero,
		IsActive:      true,
		LoanTimestamp: time.Now().UTC(),
	}
}
