package uowmock

import (
	"context"

	"loansharc-backend/internal/domain/uow"
)

// UoW hands fn a fixed set of repos without any real transaction.
type UoW struct {
	Repos uow.Repos
	// Err, when set, is returned without invoking fn.
	Err error
}

func (u *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if u.Err != nil {
		return u.Err
	}
	return fn(u.Repos)
}
