package loanhistory

import (
	"context"
	"strings"
	"time"

	domain "loansharc-backend/internal/domain/loanhistory"

	"github.com/shopspring/decimal"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

type LoanDTO struct {
	LoanID        uint64          `json:"loan_id"`
	UserAddress   string          `json:"user_address"`
	Principal     decimal.Decimal `json:"principal"`
	ServiceFee    decimal.Decimal `json:"service_fee"`
	TotalOwed     decimal.Decimal `json:"total_owed"`
	AmountRepaid  decimal.Decimal `json:"amount_repaid"`
	IsActive      bool            `json:"is_active"`
	LoanTimestamp time.Time       `json:"loan_timestamp"`
	LastUpdated   time.Time       `json:"last_updated"`
	TxHash        *string         `json:"tx_hash,omitempty"`
}

type ListInput struct {
	UserAddress string
	IsActive    *bool
}

func toDTO(l *domain.Loan) LoanDTO {
	return LoanDTO{
		LoanID:        l.LoanID,
		UserAddress:   l.UserAddress,
		Principal:     l.Principal,
		ServiceFee:    l.ServiceFee,
		TotalOwed:     l.TotalOwed,
		AmountRepaid:  l.AmountRepaid,
		IsActive:      l.IsActive,
		LoanTimestamp: l.LoanTimestamp,
		LastUpdated:   l.LastUpdated,
		TxHash:        l.TxHash,
	}
}

func (u *Usecase) List(ctx context.Context, in ListInput) ([]LoanDTO, error) {
	loans, err := u.repo.List(ctx, domain.ListFilter{
		UserAddress: strings.ToLower(strings.TrimSpace(in.UserAddress)),
		IsActive:    in.IsActive,
	})
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		out = append(out, toDTO(&loans[i]))
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(l)
	return &dto, nil
}
