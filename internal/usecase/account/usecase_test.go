package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"agrocredito/internal/domain"
	accDomain "agrocredito/internal/domain/account"
	appDomain "agrocredito/internal/domain/application"
	progDomain "agrocredito/internal/domain/program"
	"agrocredito/internal/domain/uow"
	"agrocredito/internal/testutil/accountmock"
	"agrocredito/internal/testutil/applicationmock"
	"agrocredito/internal/testutil/programmock"
	"agrocredito/internal/testutil/uowmock"

	"github.com/shopspring/decimal"
)

var opened = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

func openAccount() *accDomain.Account {
	next := opened.AddDate(0, 1, 0)
	return &accDomain.Account{
		ID:                 3,
		AccountID:          "ACC-1",
		ApplicationID:      42,
		Principal:          decimal.NewFromInt(500000),
		AnnualRate:         decimal.NewFromInt(12),
		TermMonths:         12,
		TotalAmount:        decimal.NewFromInt(533088),
		OutstandingBalance: decimal.NewFromInt(533088),
		MonthlyPayment:     decimal.NewFromInt(44424),
		NextPaymentDate:    &next,
		Status:             accDomain.StatusActive,
		CreatedAt:          opened,
	}
}

func apps() *applicationmock.Repo {
	app := &appDomain.Application{ID: 42, ApplicationID: "APP-1", OwnerID: "farmer-1"}
	return &applicationmock.Repo{
		GetByIDFn:            func(context.Context, uint64) (*appDomain.Application, error) { return app, nil },
		GetByApplicationIDFn: func(context.Context, string) (*appDomain.Application, error) { return app, nil },
	}
}

func TestUsecase_GetByApplication(t *testing.T) {
	accs := &accountmock.Repo{GetByApplicationIDFn: func(_ context.Context, id uint64) (*accDomain.Account, error) {
		if id != 42 {
			t.Fatalf("numeric id = %d", id)
		}
		return openAccount(), nil
	}}
	uc := NewUsecase(apps(), accs, uowmock.New(), nil, nil)

	dto, err := uc.GetByApplication(context.Background(), "APP-1")
	if err != nil {
		t.Fatalf("GetByApplication: %v", err)
	}
	if dto.AccountID != "ACC-1" || dto.OwnerID != "farmer-1" || dto.ApplicationID != "APP-1" {
		t.Fatalf("dto = %+v", dto)
	}
}

func TestUsecase_GetByApplication_NoAccount(t *testing.T) {
	accs := &accountmock.Repo{GetByApplicationIDFn: func(context.Context, uint64) (*accDomain.Account, error) {
		return nil, accDomain.ErrNotFound
	}}
	uc := NewUsecase(apps(), accs, uowmock.New(), nil, nil)
	if _, err := uc.GetByApplication(context.Background(), "APP-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUsecase_RecordPayment(t *testing.T) {
	acc := openAccount()
	var payments []*accDomain.Payment
	accs := &accountmock.Repo{
		GetByAccountIDForUpdateFn: func(context.Context, string) (*accDomain.Account, error) { return acc, nil },
		CreatePaymentFn: func(_ context.Context, p *accDomain.Payment) error {
			payments = append(payments, p)
			return nil
		},
	}
	uc := NewUsecase(apps(), accs, uowmock.Passthrough(uow.Repos{Accounts: accs}), nil, nil)

	out, err := uc.RecordPayment(context.Background(), RecordPaymentInput{AccountID: "ACC-1", Amount: decimal.NewFromInt(44424)})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if !out.Account.OutstandingBalance.Equal(decimal.NewFromInt(488664)) {
		t.Fatalf("balance = %s", out.Account.OutstandingBalance)
	}
	if len(payments) != 1 || payments[0].AccountID != 3 {
		t.Fatalf("payments = %+v", payments)
	}
	if want := opened.AddDate(0, 2, 0); !out.Account.NextPaymentDate.Equal(want) {
		t.Fatalf("next = %v, want %v", out.Account.NextPaymentDate, want)
	}
}

func TestUsecase_RecordPayment_Settles(t *testing.T) {
	acc := openAccount()
	accs := &accountmock.Repo{GetByAccountIDForUpdateFn: func(context.Context, string) (*accDomain.Account, error) { return acc, nil }}
	uc := NewUsecase(apps(), accs, uowmock.Passthrough(uow.Repos{Accounts: accs}), nil, nil)

	out, err := uc.RecordPayment(context.Background(), RecordPaymentInput{AccountID: "ACC-1", Amount: decimal.NewFromInt(533088)})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if out.Account.Status != string(accDomain.StatusSettled) || out.Account.NextPaymentDate != nil {
		t.Fatalf("account not settled: %+v", out.Account)
	}

	_, err = uc.RecordPayment(context.Background(), RecordPaymentInput{AccountID: "ACC-1", Amount: decimal.NewFromInt(1)})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition on settled account, got %v", err)
	}
}

func TestUsecase_RecordPayment_Overpay(t *testing.T) {
	acc := openAccount()
	accs := &accountmock.Repo{
		GetByAccountIDForUpdateFn: func(context.Context, string) (*accDomain.Account, error) { return acc, nil },
		SaveFn: func(context.Context, *accDomain.Account) error {
			t.Fatal("invalid payment must not be saved")
			return nil
		},
	}
	uc := NewUsecase(apps(), accs, uowmock.Passthrough(uow.Repos{Accounts: accs}), nil, nil)

	_, err := uc.RecordPayment(context.Background(), RecordPaymentInput{AccountID: "ACC-1", Amount: decimal.NewFromInt(600000)})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestUsecase_Schedule(t *testing.T) {
	accs := &accountmock.Repo{
		GetByAccountIDFn: func(context.Context, string) (*accDomain.Account, error) { return openAccount(), nil },
		ListPaymentsFn: func(context.Context, uint64) ([]accDomain.Payment, error) {
			return []accDomain.Payment{{Amount: decimal.NewFromInt(44424)}, {Amount: decimal.NewFromInt(44424)}}, nil
		},
	}
	uc := NewUsecase(apps(), accs, uowmock.New(), nil, nil)

	out, err := uc.Schedule(context.Background(), "ACC-1")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(out.Installments) != 12 {
		t.Fatalf("rows = %d", len(out.Installments))
	}
	if !out.Installments[0].DueDate.Equal(opened.AddDate(0, 1, 0)) {
		t.Fatalf("first due = %v", out.Installments[0].DueDate)
	}
	if !out.PaidTotal.Equal(decimal.NewFromInt(88848)) {
		t.Fatalf("paid total = %s", out.PaidTotal)
	}
}

func TestUsecase_RecordPayment_InstitutionScope(t *testing.T) {
	pid := "PRG-1"
	app := &appDomain.Application{ID: 42, ApplicationID: "APP-1", OwnerID: "farmer-1", ProgramID: &pid}
	appsRepo := &applicationmock.Repo{GetByIDFn: func(context.Context, uint64) (*appDomain.Application, error) { return app, nil }}
	programs := &programmock.Repo{GetByProgramIDFn: func(context.Context, string) (*progDomain.Program, error) {
		return &progDomain.Program{ProgramID: pid, InstitutionID: "bfa"}, nil
	}}

	cases := []struct {
		institution string
		wantErr     error
	}{
		{"bai", domain.ErrForbidden},
		{"bfa", nil},
		{"", nil}, // admin
	}
	for _, tc := range cases {
		t.Run("institution="+tc.institution, func(t *testing.T) {
			saved := false
			accs := &accountmock.Repo{
				GetByAccountIDForUpdateFn: func(context.Context, string) (*accDomain.Account, error) { return openAccount(), nil },
				SaveFn: func(context.Context, *accDomain.Account) error {
					saved = true
					return nil
				},
				CreatePaymentFn: func(context.Context, *accDomain.Payment) error { return nil },
			}
			tx := uowmock.Passthrough(uow.Repos{Applications: appsRepo, Programs: programs, Accounts: accs})
			uc := NewUsecase(appsRepo, accs, tx, nil, nil)

			_, err := uc.RecordPayment(context.Background(), RecordPaymentInput{
				AccountID:     "ACC-1",
				Amount:        decimal.NewFromInt(44424),
				InstitutionID: tc.institution,
			})
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) || saved {
					t.Fatalf("err = %v, saved = %v", err, saved)
				}
				return
			}
			if err != nil || !saved {
				t.Fatalf("err = %v, saved = %v", err, saved)
			}
		})
	}
}
