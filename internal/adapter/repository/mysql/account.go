package mysql

import (
	"context"

	accDomain "agrocredito/internal/domain/account"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

// Create fails with ErrConcurrentModification when the application already owns an account.
func (r *AccountRepository) Create(ctx context.Context, a *accDomain.Account) error {
	return storeErr(r.db.WithContext(ctx).Create(a).Error, accDomain.ErrNotFound)
}

func (r *AccountRepository) GetByAccountID(ctx context.Context, accountID string) (*accDomain.Account, error) {
	var out accDomain.Account
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&out).Error; err != nil {
		return nil, storeErr(err, accDomain.ErrNotFound)
	}
	return &out, nil
}

// GetByAccountIDForUpdate takes a row lock; call it inside a transaction.
func (r *AccountRepository) GetByAccountIDForUpdate(ctx context.Context, accountID string) (*accDomain.Account, error) {
	var out accDomain.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_id = ?", accountID).
		First(&out).Error
	if err != nil {
		return nil, storeErr(err, accDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *AccountRepository) GetByApplicationID(ctx context.Context, applicationNumericID uint64) (*accDomain.Account, error) {
	var out accDomain.Account
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationNumericID).First(&out).Error; err != nil {
		return nil, storeErr(err, accDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *AccountRepository) Save(ctx context.Context, a *accDomain.Account) error {
	return storeErr(r.db.WithContext(ctx).Save(a).Error, accDomain.ErrNotFound)
}

func (r *AccountRepository) CreatePayment(ctx context.Context, p *accDomain.Payment) error {
	return storeErr(r.db.WithContext(ctx).Create(p).Error, accDomain.ErrNotFound)
}

func (r *AccountRepository) ListPayments(ctx context.Context, accountNumericID uint64) ([]accDomain.Payment, error) {
	var out []accDomain.Payment
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountNumericID).
		Order("paid_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, storeErr(err, accDomain.ErrNotFound)
	}
	return out, nil
}
