package loanhistory

import "context"

type ListFilter struct {
	UserAddress string
	IsActive    *bool
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	// GetByLoanID looks up by the on-chain loan id, not the row PK.
	GetByLoanID(ctx context.Context, loanID uint64) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	List(ctx context.Context, f ListFilter) ([]Loan, error)
}
