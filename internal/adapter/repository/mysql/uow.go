package mysql

import (
	"context"

	"agrocredito/internal/domain/account"
	"agrocredito/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Applications: &ApplicationRepository{db: tx},
		Programs:     &ProgramRepository{db: tx},
		Accounts:     &AccountRepository{db: tx},
		Documents:    &DocumentRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinAccountTx(ctx context.Context, accountID string, fn func(r uow.Repos, a *account.Account) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the account row up-front so payments serialize
		a, err := r.Accounts.GetByAccountIDForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
