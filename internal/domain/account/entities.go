package account

import (
	"fmt"
	"time"

	"agrocredito/internal/domain"

	"github.com/shopspring/decimal"
)

var ErrNotFound = fmt.Errorf("account %w", domain.ErrNotFound)

type Status string

const (
	StatusActive  Status = "active"
	StatusSettled Status = "settled"
)

// Table: accounts. One row per approved application (unique application_id).
type Account struct {
	ID                 uint64          `gorm:"primaryKey;column:id" json:"-"`
	AccountID          string          `gorm:"size:32;not null;uniqueIndex:ux_accounts_account_id" json:"account_id"`
	ApplicationID      uint64          `gorm:"not null;uniqueIndex:ux_accounts_application_id" json:"-"`
	Principal          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"principal"`
	AnnualRate         decimal.Decimal `gorm:"type:decimal(6,3);not null" json:"annual_rate"`
	TermMonths         int             `gorm:"not null" json:"term_months"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	OutstandingBalance decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"outstanding_balance"`
	MonthlyPayment     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"monthly_payment"`
	NextPaymentDate    *time.Time      `json:"next_payment_date"`
	Status             Status          `gorm:"size:10;not null;default:'active'" json:"status"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// Table: account_payments
type Payment struct {
	ID        uint64          `gorm:"primaryKey;column:id" json:"-"`
	PaymentID string          `gorm:"size:32;not null;uniqueIndex:ux_account_payments_payment_id" json:"payment_id"`
	AccountID uint64          `gorm:"not null;index:idx_account_payments_account" json:"-"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	PaidAt    time.Time       `gorm:"not null" json:"paid_at"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string { return "account_payments" }

// ApplyPayment lowers the outstanding balance. The balance never increases and never
// goes below zero; at zero the account is settled and has no next payment date.
func (a *Account) ApplyPayment(amount decimal.Decimal) error {
	if a.Status == StatusSettled {
		return fmt.Errorf("%w: account %s is already settled", domain.ErrInvalidTransition, a.AccountID)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: payment amount must be positive", domain.ErrValidation)
	}
	if amount.GreaterThan(a.OutstandingBalance) {
		return fmt.Errorf("%w: payment %s exceeds outstanding balance %s", domain.ErrValidation, amount, a.OutstandingBalance)
	}
	a.OutstandingBalance = a.OutstandingBalance.Sub(amount)
	if a.OutstandingBalance.IsZero() {
		a.Status = StatusSettled
		a.NextPaymentDate = nil
		return nil
	}
	if a.NextPaymentDate != nil {
		next := a.NextPaymentDate.AddDate(0, 1, 0)
		a.NextPaymentDate = &next
	}
	return nil
}
