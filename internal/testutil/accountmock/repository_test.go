package accountmock

import (
	"context"
	"errors"
	"testing"

	domain "agrocredito/internal/domain/account"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	if err := m.Create(ctx, &domain.Account{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if err := m.Save(ctx, &domain.Account{}); err != nil {
		t.Fatalf("Save default: %v", err)
	}
	if err := m.CreatePayment(ctx, &domain.Payment{}); err != nil {
		t.Fatalf("CreatePayment default: %v", err)
	}
	if _, err := m.GetByAccountID(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByAccountID default: %v", err)
	}
	if _, err := m.GetByAccountIDForUpdate(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByAccountIDForUpdate default: %v", err)
	}
	if _, err := m.GetByApplicationID(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByApplicationID default: %v", err)
	}
	if _, err := m.ListPayments(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("ListPayments default: %v", err)
	}
}

func TestRepo_Create_UsesFunc(t *testing.T) {
	wantErr := errors.New("dup")
	m := &Repo{CreateFn: func(_ context.Context, a *domain.Account) error {
		if a.AccountID != "ACC-1" {
			t.Fatalf("arg mismatch: %+v", a)
		}
		return wantErr
	}}
	if err := m.Create(context.Background(), &domain.Account{AccountID: "ACC-1"}); !errors.Is(err, wantErr) {
		t.Fatalf("want %v, got %v", wantErr, err)
	}
}
