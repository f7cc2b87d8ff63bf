package chainsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"loansharc-backend/internal/domain/loanhistory"
	"loansharc-backend/internal/domain/transaction"
	"loansharc-backend/internal/domain/uow"
	"loansharc-backend/pkg/fixedpoint"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Handlers project decoded chain events into the two derived stores. Each
// Apply commits the event's record insert plus aggregate upsert as one
// unit, and converges to the same store state on replay.
type Handlers struct {
	uow        uow.UnitOfWork
	timestamps *BlockTimestamps
	logger     *slog.Logger
}

func NewHandlers(u uow.UnitOfWork, timestamps *BlockTimestamps, logger *slog.Logger) *Handlers {
	return &Handlers{uow: u, timestamps: timestamps, logger: logger}
}

func (h *Handlers) Apply(ctx context.Context, ev Event) error {
	switch e := ev.(type) {
	case *LoanIssued:
		return h.applyLoanIssued(ctx, e)
	case *RepaymentMade:
		return h.applyRepaymentMade(ctx, e)
	case *LoanFullyRepaid:
		return h.applyLoanFullyRepaid(ctx, e)
	default:
		return fmt.Errorf("unhandled event kind %s", ev.EventKind())
	}
}

func (h *Handlers) applyLoanIssued(ctx context.Context, e *LoanIssued) error {
	principal := fixedpoint.FromRaw(e.Principal)
	serviceFee := fixedpoint.FromRaw(e.ServiceFee)
	totalOwed := fixedpoint.FromRaw(e.TotalOwed)

	meta := fmt.Sprintf(`{"serviceFee": %s, "totalOwed": %s}`, serviceFee, totalOwed)
	txHash := e.TxHash
	blockNumber := e.BlockNumber
	loanID := e.LoanID

	return h.uow.WithinTx(ctx, func(r uow.Repos) error {
		rec := &transaction.Record{
			UserAddress:          e.Borrower,
			Type:                 transaction.TypeLoanIssued,
			Amount:               principal,
			Currency:             "USDC",
			LoanID:               &loanID,
			TxHash:               &txHash,
			BlockNumber:          &blockNumber,
			TransactionTimestamp: e.Timestamp,
			Status:               transaction.StatusConfirmed,
			Metadata:             &meta,
		}
		if err := r.Transactions.Create(ctx, rec); err != nil {
			return err
		}

		l, err := r.Loans.GetByLoanID(ctx, e.LoanID)
		switch {
		case err == nil:
			// Repeat issuance is authoritative replacement: reset the
			// aggregate to its issuance-time shape and reactivate.
			l.UserAddress = e.Borrower
			l.Principal = principal
			l.ServiceFee = serviceFee
			l.TotalOwed = totalOwed
			l.LoanTimestamp = e.Timestamp
			l.TxHash = &txHash
			l.IsActive = true
			return r.Loans.Save(ctx, l)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return r.Loans.Create(ctx, &loanhistory.Loan{
				LoanID:        e.LoanID,
				UserAddress:   e.Borrower,
				Principal:     principal,
				ServiceFee:    serviceFee,
				TotalOwed:     totalOwed,
				AmountRepaid:  decimal.Zero,
				IsActive:      true,
				LoanTimestamp: e.Timestamp,
				TxHash:        &txHash,
			})
		default:
			return err
		}
	})
}

func (h *Handlers) applyRepaymentMade(ctx context.Context, e *RepaymentMade) error {
	amount := fixedpoint.FromRaw(e.Amount)
	remaining := fixedpoint.FromRaw(e.RemainingBalance)

	// This event kind embeds no timestamp; it costs one block-header
	// lookup (cached across the batch).
	ts, err := h.timestamps.Resolve(ctx, e.BlockNumber)
	if err != nil {
		return fmt.Errorf("repayment timestamp: %w", err)
	}

	meta := fmt.Sprintf(`{"remainingBalance": %s}`, remaining)
	txHash := e.TxHash
	blockNumber := e.BlockNumber
	loanID := e.LoanID

	return h.uow.WithinTx(ctx, func(r uow.Repos) error {
		rec := &transaction.Record{
			UserAddress:          e.Borrower,
			Type:                 transaction.TypeRepay,
			Amount:               amount,
			Currency:             "USDC",
			LoanID:               &loanID,
			TxHash:               &txHash,
			BlockNumber:          &blockNumber,
			TransactionTimestamp: ts,
			Status:               transaction.StatusConfirmed,
			Metadata:             &meta,
		}
		if err := r.Transactions.Create(ctx, rec); err != nil {
			return err
		}

		l, err := r.Loans.GetByLoanID(ctx, e.LoanID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Repayment for a loan we never saw issued; mirror the
			// record anyway and leave the aggregate alone.
			h.logger.Warn("repayment for unknown loan", "loan_id", e.LoanID, "tx", e.TxHash)
			return nil
		}
		if err != nil {
			return err
		}

		// Absolute recomputation from the ledger-reported remaining
		// balance, not an increment. Replays and out-of-order delivery
		// converge to the same value.
		l.AmountRepaid = l.TotalOwed.Sub(remaining)
		l.IsActive = remaining.IsPositive()
		return r.Loans.Save(ctx, l)
	})
}

func (h *Handlers) applyLoanFullyRepaid(ctx context.Context, e *LoanFullyRepaid) error {
	// No transaction record for this kind; it only forces the aggregate
	// closed, overriding whatever partial-repayment bookkeeping said.
	return h.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, e.LoanID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.logger.Warn("closure for unknown loan", "loan_id", e.LoanID)
			return nil
		}
		if err != nil {
			return err
		}
		l.AmountRepaid = l.TotalOwed
		l.IsActive = false
		return r.Loans.Save(ctx, l)
	})
}
