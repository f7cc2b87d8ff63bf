package mysql

import (
	"context"

	loanDomain "loansharc-backend/internal/domain/loanhistory"

	"gorm.io/gorm"
)

type LoanHistoryRepository struct{ db *gorm.DB }

func NewLoanHistoryRepository(db *gorm.DB) *LoanHistoryRepository {
	return &LoanHistoryRepository{db: db}
}

func (r *LoanHistoryRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanHistoryRepository) GetByLoanID(ctx context.Context, loanID uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanHistoryRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanHistoryRepository) List(ctx context.Context, f loanDomain.ListFilter) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{})
	if f.UserAddress != "" {
		q = q.Where("user_address = ?", f.UserAddress)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	var out []loanDomain.Loan
	err := q.Order("loan_timestamp DESC, id DESC").Find(&out).Error
	return out, err
}
