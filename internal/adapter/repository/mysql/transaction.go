package mysql

import (
	"context"
	"errors"

	txDomain "loansharc-backend/internal/domain/transaction"

	"gorm.io/gorm"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, rec *txDomain.Record) error {
	err := r.db.WithContext(ctx).Create(rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// tx_hash unique index rejected the insert: the event is
		// already mirrored.
		return txDomain.ErrDuplicateTx
	}
	return err
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*txDomain.Record, error) {
	var out txDomain.Record
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *TransactionRepository) List(ctx context.Context, f txDomain.ListFilter) ([]txDomain.Record, int64, error) {
	q := r.db.WithContext(ctx).Model(&txDomain.Record{})
	if f.UserAddress != "" {
		q = q.Where("user_address = ?", f.UserAddress)
	}
	if f.Type != "" {
		q = q.Where("transaction_type = ?", f.Type)
	}
	if f.LoanID != nil {
		q = q.Where("loan_id = ?", *f.LoanID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, size := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 50
	}

	var out []txDomain.Record
	err := q.Order("transaction_timestamp DESC, id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&out).Error
	return out, total, err
}
