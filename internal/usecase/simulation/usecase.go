package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agrocredito/internal/domain"
	appDomain "agrocredito/internal/domain/application"
	progDomain "agrocredito/internal/domain/program"
	"agrocredito/internal/infrastructure/metrics"
	"agrocredito/pkg/loancalc"

	"github.com/shopspring/decimal"
)

type SimulateInput struct {
	Amount        decimal.Decimal
	TermMonths    int
	ProjectType   appDomain.ProjectType
	ProgramID     string
	MonthlyIncome decimal.NullDecimal
}

type SimulationDTO struct {
	ProjectType    string                 `json:"project_type"`
	ProgramID      string                 `json:"program_id,omitempty"`
	Principal      decimal.Decimal        `json:"principal"`
	AnnualRate     decimal.Decimal        `json:"annual_rate"`
	TermMonths     int                    `json:"term_months"`
	MonthlyPayment decimal.Decimal        `json:"monthly_payment"`
	TotalInterest  decimal.Decimal        `json:"total_interest"`
	TotalRepayment decimal.Decimal        `json:"total_repayment"`
	ProcessingFee  decimal.Decimal        `json:"processing_fee"`
	EffortRatio    *decimal.Decimal       `json:"effort_ratio,omitempty"`
	EffortLimit    decimal.Decimal        `json:"effort_limit"`
	Affordable     *bool                  `json:"affordable,omitempty"`
	Schedule       []loancalc.Installment `json:"schedule"`
}

type Usecase struct {
	programs    progDomain.Repository
	rates       loancalc.RateTable
	effortLimit decimal.Decimal
	metrics     *metrics.Collector
	now         func() time.Time
}

func NewUsecase(programs progDomain.Repository, rates loancalc.RateTable, defaultEffortRate decimal.Decimal, m *metrics.Collector) *Usecase {
	if rates == nil {
		rates = loancalc.DefaultRates()
	}
	return &Usecase{programs: programs, rates: rates, effortLimit: defaultEffortRate, metrics: m, now: time.Now}
}

// Simulate prices a prospective loan without persisting anything.
func (u *Usecase) Simulate(ctx context.Context, in SimulateInput) (*SimulationDTO, error) {
	if !in.ProjectType.Valid() {
		return nil, fmt.Errorf("%w: unknown project type %q", domain.ErrValidation, in.ProjectType)
	}

	var (
		rate  decimal.Decimal
		fee   = decimal.Zero
		limit = u.effortLimit
	)
	if in.ProgramID != "" {
		p, err := u.programs.GetByProgramID(ctx, in.ProgramID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: program %s does not exist", domain.ErrValidation, in.ProgramID)
		}
		if err != nil {
			return nil, err
		}
		if err := p.Admits(in.ProjectType, in.Amount, in.TermMonths); err != nil {
			return nil, err
		}
		rate = p.InterestRate
		fee = p.ProcessingFeeFor(in.Amount)
		if p.EffortRate.IsPositive() {
			limit = p.EffortRate
		}
	} else {
		r, ok := u.rates.Rate(string(in.ProjectType))
		if !ok {
			return nil, fmt.Errorf("%w: no interest rate for project type %s", domain.ErrValidation, in.ProjectType)
		}
		rate = r
	}

	quote, err := loancalc.Calculate(in.Amount, rate, in.TermMonths)
	if err != nil {
		return nil, err
	}
	schedule, err := loancalc.Schedule(in.Amount, rate, in.TermMonths, u.now().UTC())
	if err != nil {
		return nil, err
	}

	out := &SimulationDTO{
		ProjectType:    string(in.ProjectType),
		ProgramID:      in.ProgramID,
		Principal:      quote.Principal,
		AnnualRate:     quote.AnnualRate,
		TermMonths:     quote.TermMonths,
		MonthlyPayment: quote.MonthlyPayment,
		TotalInterest:  quote.TotalInterest,
		TotalRepayment: quote.TotalRepayment,
		ProcessingFee:  fee,
		EffortLimit:    limit,
		Schedule:       schedule,
	}
	if in.MonthlyIncome.Valid {
		if !in.MonthlyIncome.Decimal.IsPositive() {
			return nil, fmt.Errorf("%w: monthly income must be positive", domain.ErrValidation)
		}
		ratio := EffortRatio(quote.MonthlyPayment, in.MonthlyIncome.Decimal)
		ok := ratio.LessThanOrEqual(limit)
		out.EffortRatio = &ratio
		out.Affordable = &ok
	}

	u.metrics.Simulation(string(in.ProjectType))
	return out, nil
}

// EffortRatio is the installment as a percentage of monthly income, to two places.
func EffortRatio(payment, income decimal.Decimal) decimal.Decimal {
	return payment.Div(income).Mul(decimal.NewFromInt(100)).Round(2)
}
