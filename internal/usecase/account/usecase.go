package account

import (
	"context"
	"fmt"
	"time"

	"agrocredito/internal/domain"
	accDomain "agrocredito/internal/domain/account"
	appDomain "agrocredito/internal/domain/application"
	"agrocredito/internal/domain/uow"
	"agrocredito/internal/infrastructure/metrics"
	"agrocredito/pkg/id"
	"agrocredito/pkg/loancalc"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type AccountDTO struct {
	AccountID          string          `json:"account_id"`
	ApplicationID      string          `json:"application_id"`
	OwnerID            string          `json:"owner_id"`
	Principal          decimal.Decimal `json:"principal"`
	AnnualRate         decimal.Decimal `json:"annual_rate"`
	TermMonths         int             `json:"term_months"`
	MonthlyPayment     decimal.Decimal `json:"monthly_payment"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	NextPaymentDate    *time.Time      `json:"next_payment_date"`
	Status             string          `json:"status"`
	OpenedAt           time.Time       `json:"opened_at"`
}

type RecordPaymentInput struct {
	AccountID string
	Amount    decimal.Decimal
	// PaidAt defaults to now.
	PaidAt time.Time
	// InstitutionID limits institution staff to accounts under their own programs; empty for admins.
	InstitutionID string
}

type PaymentDTO struct {
	Payment accDomain.Payment `json:"payment"`
	Account AccountDTO        `json:"account"`
}

type ScheduleDTO struct {
	Account      AccountDTO             `json:"account"`
	Installments []loancalc.Installment `json:"installments"`
	Payments     []accDomain.Payment    `json:"payments"`
	PaidTotal    decimal.Decimal        `json:"paid_total"`
}

type Usecase struct {
	apps     appDomain.Repository
	accounts accDomain.Repository
	uow      uow.UnitOfWork
	metrics  *metrics.Collector
	log      *zap.Logger
	now      func() time.Time
}

func NewUsecase(apps appDomain.Repository, accounts accDomain.Repository, tx uow.UnitOfWork, m *metrics.Collector, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{apps: apps, accounts: accounts, uow: tx, metrics: m, log: log, now: time.Now}
}

func (u *Usecase) GetByApplication(ctx context.Context, applicationID string) (*AccountDTO, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	acc, err := u.accounts.GetByApplicationID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(acc, a)
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, accountID string) (*AccountDTO, error) {
	acc, err := u.accounts.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	a, err := u.apps.GetByID(ctx, acc.ApplicationID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(acc, a)
	return &dto, nil
}

// RecordPayment applies a repayment under a row lock on the account.
func (u *Usecase) RecordPayment(ctx context.Context, in RecordPaymentInput) (*PaymentDTO, error) {
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = u.now()
	}

	var (
		p   *accDomain.Payment
		acc *accDomain.Account
	)
	err := u.uow.WithinAccountTx(ctx, in.AccountID, func(r uow.Repos, locked *accDomain.Account) error {
		if err := authorize(ctx, r, locked, in.InstitutionID); err != nil {
			return err
		}
		if err := locked.ApplyPayment(in.Amount); err != nil {
			return err
		}
		if err := r.Accounts.Save(ctx, locked); err != nil {
			return err
		}
		p = &accDomain.Payment{
			PaymentID: id.NewID32(),
			AccountID: locked.ID,
			Amount:    in.Amount,
			PaidAt:    paidAt.UTC(),
		}
		acc = locked
		return r.Accounts.CreatePayment(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	a, err := u.apps.GetByID(ctx, acc.ApplicationID)
	if err != nil {
		return nil, err
	}
	u.metrics.PaymentRecorded()
	u.log.Info("payment recorded",
		zap.String("account_id", acc.AccountID),
		zap.String("amount", in.Amount.String()),
		zap.String("outstanding", acc.OutstandingBalance.String()),
		zap.String("status", string(acc.Status)),
	)
	return &PaymentDTO{Payment: *p, Account: toDTO(acc, a)}, nil
}

func authorize(ctx context.Context, r uow.Repos, acc *accDomain.Account, institutionID string) error {
	if institutionID == "" {
		return nil
	}
	a, err := r.Applications.GetByID(ctx, acc.ApplicationID)
	if err != nil {
		return err
	}
	if a.ProgramID == nil {
		return nil
	}
	p, err := r.Programs.GetByProgramID(ctx, *a.ProgramID)
	if err != nil {
		return err
	}
	if !p.ManagedBy(institutionID) {
		return fmt.Errorf("%w: account %s is under another institution's program", domain.ErrForbidden, acc.AccountID)
	}
	return nil
}

// Schedule rebuilds the amortization table from the account terms, dated from the account opening.
func (u *Usecase) Schedule(ctx context.Context, accountID string) (*ScheduleDTO, error) {
	acc, err := u.accounts.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	a, err := u.apps.GetByID(ctx, acc.ApplicationID)
	if err != nil {
		return nil, err
	}
	rows, err := loancalc.Schedule(acc.Principal, acc.AnnualRate, acc.TermMonths, acc.CreatedAt)
	if err != nil {
		return nil, err
	}
	payments, err := u.accounts.ListPayments(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	return &ScheduleDTO{
		Account:      toDTO(acc, a),
		Installments: rows,
		Payments:     payments,
		PaidTotal:    paid,
	}, nil
}

func toDTO(acc *accDomain.Account, a *appDomain.Application) AccountDTO {
	return AccountDTO{
		AccountID:          acc.AccountID,
		ApplicationID:      a.ApplicationID,
		OwnerID:            a.OwnerID,
		Principal:          acc.Principal,
		AnnualRate:         acc.AnnualRate,
		TermMonths:         acc.TermMonths,
		MonthlyPayment:     acc.MonthlyPayment,
		TotalAmount:        acc.TotalAmount,
		OutstandingBalance: acc.OutstandingBalance,
		NextPaymentDate:    acc.NextPaymentDate,
		Status:             string(acc.Status),
		OpenedAt:           acc.CreatedAt,
	}
}
