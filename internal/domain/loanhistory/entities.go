package loanhistory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is the mutable per-loan materialized view derived from chain
// events, one row per on-chain loan id. Invariants after reconciliation:
// total_owed == principal + service_fee, 0 <= amount_repaid <= total_owed,
// is_active == (amount_repaid < total_owed).
type Loan struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID      uint64 `gorm:"uniqueIndex:ux_loan_history_loan_id" json:"loan_id"`
	UserAddress string `gorm:"size:66;index:idx_loan_history_user" json:"user_address"`

	Principal    decimal.Decimal `gorm:"type:decimal(20,6)" json:"principal"`
	ServiceFee   decimal.Decimal `gorm:"type:decimal(20,6)" json:"service_fee"`
	TotalOwed    decimal.Decimal `gorm:"type:decimal(20,6)" json:"total_owed"`
	AmountRepaid decimal.Decimal `gorm:"type:decimal(20,6)" json:"amount_repaid"`

	IsActive bool `gorm:"index:idx_loan_history_active" json:"is_active"`

	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	LoanTimestamp time.Time `json:"loan_timestamp"`
	LastUpdated   time.Time `gorm:"autoUpdateTime" json:"last_updated"`

	// Tx hash of the issuance transaction.
	TxHash *string `gorm:"size:66" json:"tx_hash,omitempty"`
}

func (Loan) TableName() string { return "loan_history" }
