package transaction

import "context"

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	UserAddress string
	Type        Type
	LoanID      *uint64
	Page        int
	PageSize    int
}

type Repository interface {
	// Create inserts a record; a repeat tx_hash yields ErrDuplicateTx.
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id uint64) (*Record, error)
	// List returns a page (newest first) plus the total match count.
	List(ctx context.Context, f ListFilter) ([]Record, int64, error)
}
