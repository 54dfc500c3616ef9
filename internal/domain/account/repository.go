package account

import "context"

type Repository interface {
	// Create fails with domain.ErrConcurrentModification when the application already has one.
	Create(ctx context.Context, a *Account) error
	GetByAccountID(ctx context.Context, accountID string) (*Account, error)
	GetByAccountIDForUpdate(ctx context.Context, accountID string) (*Account, error)
	GetByApplicationID(ctx context.Context, applicationNumericID uint64) (*Account, error)
	Save(ctx context.Context, a *Account) error

	CreatePayment(ctx context.Context, p *Payment) error
	ListPayments(ctx context.Context, accountNumericID uint64) ([]Payment, error)
}
