package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "loansharc-backend/internal/domain/transaction"

	"github.com/shopspring/decimal"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

type RecordDTO struct {
	ID                   uint64          `json:"id"`
	UserAddress          string          `json:"user_address"`
	TransactionType      string          `json:"transaction_type"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	LoanID               *uint64         `json:"loan_id,omitempty"`
	TxHash               *string         `json:"tx_hash,omitempty"`
	BlockNumber          *int64          `json:"block_number,omitempty"`
	TransactionTimestamp time.Time       `json:"transaction_timestamp"`
	Status               string          `json:"status"`
	Metadata             *string         `json:"metadata,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}

type ListInput struct {
	UserAddress string
	Type        string
	LoanID      *uint64
	Page        int
	PageSize    int
}

type ListOutput struct {
	Transactions []RecordDTO `json:"transactions"`
	Total        int64       `json:"total"`
	Page         int         `json:"page"`
	PageSize     int         `json:"page_size"`
}

type CreateInput struct {
	UserAddress          string          `json:"user_address"`
	TransactionType      string          `json:"transaction_type"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	LoanID               *uint64         `json:"loan_id"`
	TxHash               *string         `json:"tx_hash"`
	BlockNumber          *int64          `json:"block_number"`
	TransactionTimestamp string          `json:"transaction_timestamp"`
	Status               string          `json:"status"`
	Metadata             *string         `json:"metadata"`
}

func toDTO(r *domain.Record) RecordDTO {
	return RecordDTO{
		ID:                   r.ID,
		UserAddress:          r.UserAddress,
		TransactionType:      string(r.Type),
		Amount:               r.Amount,
		Currency:             r.Currency,
		LoanID:               r.LoanID,
		TxHash:               r.TxHash,
		BlockNumber:          r.BlockNumber,
		TransactionTimestamp: r.TransactionTimestamp,
		Status:               string(r.Status),
		Metadata:             r.Metadata,
		CreatedAt:            r.CreatedAt,
	}
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*ListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 || in.PageSize > 100 {
		in.PageSize = 50
	}
	recs, total, err := u.repo.List(ctx, domain.ListFilter{
		UserAddress: strings.ToLower(strings.TrimSpace(in.UserAddress)),
		Type:        domain.Type(in.Type),
		LoanID:      in.LoanID,
		Page:        in.Page,
		PageSize:    in.PageSize,
	})
	if err != nil {
		return nil, err
	}
	out := &ListOutput{Total: total, Page: in.Page, PageSize: in.PageSize, Transactions: make([]RecordDTO, 0, len(recs))}
	for i := range recs {
		out.Transactions = append(out.Transactions, toDTO(&recs[i]))
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*RecordDTO, error) {
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(r)
	return &dto, nil
}

// Create logs an off-chain transaction (manual intake; chain events come
// in through the sync engine, not here).
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*RecordDTO, error) {
	addr := strings.ToLower(strings.TrimSpace(in.UserAddress))
	if !strings.HasPrefix(addr, "0x") || len(addr) < 10 {
		return nil, fmt.Errorf("invalid user address format: %s", in.UserAddress)
	}
	if in.TransactionType == "" {
		return nil, errors.New("transaction_type is required")
	}
	if in.Amount.IsNegative() {
		return nil, errors.New("amount must not be negative")
	}

	ts := time.Now().UTC()
	if raw := strings.TrimSpace(in.TransactionTimestamp); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction_timestamp: %w", err)
		}
		ts = parsed.UTC()
	}

	currency := in.Currency
	if currency == "" {
		currency = "USDC"
	}
	status := domain.Status(in.Status)
	if status == "" {
		status = domain.StatusPending
	}

	rec := &domain.Record{
		UserAddress:          addr,
		Type:                 domain.Type(in.TransactionType),
		Amount:               in.Amount,
		Currency:             currency,
		LoanID:               in.LoanID,
		TxHash:               in.TxHash,
		BlockNumber:          in.BlockNumber,
		TransactionTimestamp: ts,
		Status:               status,
		Metadata:             in.Metadata,
	}
	if err := u.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	dto := toDTO(rec)
	return &dto, nil
}
