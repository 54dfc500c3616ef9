package account

import (
	"errors"
	"testing"
	"time"

	"agrocredito/internal/domain"

	"github.com/shopspring/decimal"
)

func newAccount() *Account {
	next := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	return &Account{
		AccountID:          "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		TotalAmount:        decimal.NewFromInt(533_088),
		OutstandingBalance: decimal.NewFromInt(533_088),
		MonthlyPayment:     decimal.NewFromInt(44_424),
		NextPaymentDate:    &next,
		Status:             StatusActive,
	}
}

func TestApplyPayment_DecreasesAndAdvances(t *testing.T) {
	a := newAccount()
	if err := a.ApplyPayment(decimal.NewFromInt(44_424)); err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if !a.OutstandingBalance.Equal(decimal.NewFromInt(488_664)) {
		t.Fatalf("balance = %s", a.OutstandingBalance)
	}
	if want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC); !a.NextPaymentDate.Equal(want) {
		t.Fatalf("next payment = %v, want %v", a.NextPaymentDate, want)
	}
}

func TestApplyPayment_Settles(t *testing.T) {
	a := newAccount()
	if err := a.ApplyPayment(a.OutstandingBalance); err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if a.Status != StatusSettled || a.NextPaymentDate != nil || !a.OutstandingBalance.IsZero() {
		t.Fatalf("account not settled: %+v", a)
	}
	if err := a.ApplyPayment(decimal.NewFromInt(1)); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("payment on settled account: want ErrInvalidTransition, got %v", err)
	}
}

func TestApplyPayment_Rejects(t *testing.T) {
	for name, amt := range map[string]decimal.Decimal{
		"zero":        decimal.Zero,
		"negative":    decimal.NewFromInt(-10),
		"overpayment": decimal.NewFromInt(533_089),
	} {
		a := newAccount()
		if err := a.ApplyPayment(amt); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: want ErrValidation, got %v", name, err)
		}
		if !a.OutstandingBalance.Equal(a.TotalAmount) {
			t.Fatalf("%s: balance changed to %s", name, a.OutstandingBalance)
		}
	}
}
