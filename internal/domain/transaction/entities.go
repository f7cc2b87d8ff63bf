package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeLoanIssued Type = "loan_issued"
	TypeRepay      Type = "repay"
	TypeBorrow     Type = "borrow"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// ErrDuplicateTx is returned when an insert is rejected by the unique
// tx_hash index, meaning the same on-chain event was already mirrored.
var ErrDuplicateTx = errors.New("transaction already mirrored for tx hash")

// Record is one row of the append-only ledger mirror. tx_hash uniqueness
// is the engine's primary idempotence guard.
type Record struct {
	ID          uint64  `gorm:"primaryKey;column:id" json:"id"`
	UserAddress string  `gorm:"size:66;index:idx_tx_user_type;index:idx_tx_user_created" json:"user_address"`
	Type        Type    `gorm:"column:transaction_type;size:20;index:idx_tx_user_type" json:"transaction_type"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,6)" json:"amount"`
	Currency    string  `gorm:"size:10;default:USDC" json:"currency"`
	LoanID      *uint64 `gorm:"index:idx_tx_loan_id" json:"loan_id,omitempty"`
	TxHash      *string `gorm:"size:66;uniqueIndex:ux_transactions_tx_hash" json:"tx_hash,omitempty"`
	BlockNumber *int64  `json:"block_number,omitempty"`

	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	TransactionTimestamp time.Time `json:"transaction_timestamp"`

	Status   Status  `gorm:"size:20;default:pending" json:"status"`
	Metadata *string `gorm:"column:extra_metadata;type:text" json:"metadata,omitempty"`
}

func (Record) TableName() string { return "transactions" }
