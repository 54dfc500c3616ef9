// Package loancalc computes fixed-installment (amortizing) repayment terms in Kwanza.
//
// All arithmetic is done with shopspring/decimal. Only the monthly payment is rounded,
// to whole Kwanza, since AOA is displayed without minor units.
package loancalc

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidInput = errors.New("invalid input")

// working precision for intermediate powers
const powPlaces = 30

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

type Result struct {
	Principal      decimal.Decimal `json:"principal"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	TermMonths     int             `json:"term_months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	TotalRepayment decimal.Decimal `json:"total_repayment"`
}

type Installment struct {
	Number    int             `json:"number"`
	DueDate   time.Time       `json:"due_date"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
}

// Calculate returns the fixed monthly installment for principal borrowed at
// annualRatePct percent per year over termMonths.
func Calculate(principal, annualRatePct decimal.Decimal, termMonths int) (Result, error) {
	if err := checkInput(principal, annualRatePct, termMonths); err != nil {
		return Result{}, err
	}
	n := decimal.NewFromInt(int64(termMonths))

	exact := exactInstallment(principal, MonthlyRate(annualRatePct), termMonths)
	payment := exact.Round(0)
	// installments never sum below the principal
	if payment.Mul(n).LessThan(principal) {
		payment = exact.Ceil()
	}
	total := payment.Mul(n)

	return Result{
		Principal:      principal,
		AnnualRate:     annualRatePct,
		TermMonths:     termMonths,
		MonthlyPayment: payment,
		TotalInterest:  total.Sub(principal),
		TotalRepayment: total,
	}, nil
}

// Schedule lays out the amortization table starting one month after start.
// The last row absorbs rounding so that the balance ends at zero.
func Schedule(principal, annualRatePct decimal.Decimal, termMonths int, start time.Time) ([]Installment, error) {
	res, err := Calculate(principal, annualRatePct, termMonths)
	if err != nil {
		return nil, err
	}
	r := MonthlyRate(annualRatePct)

	rows := make([]Installment, 0, termMonths)
	balance := principal
	for i := 1; i <= termMonths; i++ {
		interest := balance.Mul(r).Round(0)
		part := res.MonthlyPayment.Sub(interest)
		if i == termMonths || part.GreaterThan(balance) {
			part = balance
		}
		balance = balance.Sub(part)
		rows = append(rows, Installment{
			Number:    i,
			DueDate:   start.AddDate(0, i, 0),
			Payment:   part.Add(interest),
			Interest:  interest,
			Principal: part,
			Balance:   balance,
		})
	}
	return rows, nil
}

// MonthlyRate converts an annual percentage into a monthly fraction (12% -> 0.01).
func MonthlyRate(annualRatePct decimal.Decimal) decimal.Decimal {
	return annualRatePct.Div(hundred).Div(monthsPerYear)
}

func checkInput(principal, rate decimal.Decimal, term int) error {
	switch {
	case !principal.IsPositive():
		return fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidInput, principal)
	case term <= 0:
		return fmt.Errorf("%w: term must be positive, got %d", ErrInvalidInput, term)
	case rate.IsNegative():
		return fmt.Errorf("%w: rate must not be negative, got %s", ErrInvalidInput, rate)
	}
	return nil
}

// exactInstallment solves P = A * (1 - (1+r)^-n) / r for A, unrounded.
func exactInstallment(p, r decimal.Decimal, n int) decimal.Decimal {
	if r.IsZero() {
		return p.Div(decimal.NewFromInt(int64(n)))
	}
	f := powInt(decimal.NewFromInt(1).Add(r), n)
	return p.Mul(r).Mul(f).Div(f.Sub(decimal.NewFromInt(1)))
}

func powInt(base decimal.Decimal, n int) decimal.Decimal {
	out := decimal.NewFromInt(1)
	for n > 0 {
		if n&1 == 1 {
			out = out.Mul(base).Round(powPlaces)
		}
		base = base.Mul(base).Round(powPlaces)
		n >>= 1
	}
	return out
}
