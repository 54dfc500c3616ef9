package uow

import (
	"context"

	"agrocredito/internal/domain/account"
	"agrocredito/internal/domain/application"
	"agrocredito/internal/domain/document"
	"agrocredito/internal/domain/program"
)

// Repos are bound to the same transaction.
type Repos struct {
	Applications application.Repository
	Programs     program.Repository
	Accounts     account.Repository
	Documents    document.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the account row first, then pass it in
	WithinAccountTx(ctx context.Context, accountID string, fn func(r Repos, a *account.Account) error) error
}
