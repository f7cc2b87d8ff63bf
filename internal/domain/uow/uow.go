package uow

import (
	"context"

	"loansharc-backend/internal/domain/loanhistory"
	"loansharc-backend/internal/domain/transaction"
)

type Repos struct {
	Transactions transaction.Repository
	Loans        loanhistory.Repository
}

// UnitOfWork scopes store mutations to one transaction. The sync engine
// runs each event's record insert plus aggregate upsert inside a single
// WithinTx, so a mid-run crash leaves whole events unapplied, never half.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
