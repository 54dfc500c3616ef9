package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agrocredito/internal/domain"
	accDomain "agrocredito/internal/domain/account"
	appDomain "agrocredito/internal/domain/application"
	"agrocredito/internal/domain/event"
	progDomain "agrocredito/internal/domain/program"
	"agrocredito/internal/domain/uow"
	"agrocredito/internal/infrastructure/metrics"
	"agrocredito/pkg/id"
	"agrocredito/pkg/loancalc"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	referencePrefix = "AC"
	defaultPageSize = 50
	maxPageSize     = 200
)

type Deps struct {
	Applications appDomain.Repository
	Programs     progDomain.Repository
	UoW          uow.UnitOfWork
	Publisher    event.Publisher
	Rates        loancalc.RateTable
	Metrics      *metrics.Collector
	Logger       *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type Usecase struct {
	apps     appDomain.Repository
	programs progDomain.Repository
	uow      uow.UnitOfWork
	pub      event.Publisher
	rates    loancalc.RateTable
	metrics  *metrics.Collector
	log      *zap.Logger
	now      func() time.Time
}

func NewUsecase(d Deps) *Usecase {
	u := &Usecase{
		apps:     d.Applications,
		programs: d.Programs,
		uow:      d.UoW,
		pub:      d.Publisher,
		rates:    d.Rates,
		metrics:  d.Metrics,
		log:      d.Logger,
		now:      d.Now,
	}
	if u.log == nil {
		u.log = zap.NewNop()
	}
	if u.now == nil {
		u.now = time.Now
	}
	if u.rates == nil {
		u.rates = loancalc.DefaultRates()
	}
	return u
}

func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ApplicationDTO, error) {
	if err := validateSubmit(in); err != nil {
		return nil, err
	}

	var programID *string
	if in.ProgramID != "" {
		p, err := u.lookupProgram(ctx, in.ProgramID)
		if err != nil {
			return nil, err
		}
		if err := p.Admits(in.ProjectType, in.RequestedAmount, in.TermMonths); err != nil {
			return nil, err
		}
		programID = &p.ProgramID
	}

	now := u.now().UTC()
	a := &appDomain.Application{
		ApplicationID:   id.NewID32(),
		Reference:       id.NewReference(referencePrefix, now),
		OwnerID:         in.OwnerID,
		ProgramID:       programID,
		ProjectName:     strings.TrimSpace(in.ProjectName),
		ProjectType:     in.ProjectType,
		Description:     strings.TrimSpace(in.Description),
		RequestedAmount: in.RequestedAmount,
		TermMonths:      in.TermMonths,
		Status:          appDomain.StatusPending,
		StatusUpdatedAt: now,
		Profile:         in.Profile,
	}
	if err := u.apps.Create(ctx, a); err != nil {
		return nil, err
	}

	u.metrics.ApplicationSubmitted(string(a.ProjectType))
	u.log.Info("application submitted",
		zap.String("application_id", a.ApplicationID),
		zap.String("reference", a.Reference),
		zap.String("project_type", string(a.ProjectType)),
	)
	dto := toDTO(a)
	return &dto, nil
}

func validateSubmit(in SubmitInput) error {
	switch {
	case strings.TrimSpace(in.OwnerID) == "":
		return fmt.Errorf("%w: owner is required", domain.ErrValidation)
	case strings.TrimSpace(in.ProjectName) == "":
		return fmt.Errorf("%w: project name is required", domain.ErrValidation)
	case !in.ProjectType.Valid():
		return fmt.Errorf("%w: unknown project type %q", domain.ErrValidation, in.ProjectType)
	case !in.RequestedAmount.IsPositive():
		return fmt.Errorf("%w: requested amount must be positive", domain.ErrValidation)
	case in.TermMonths <= 0:
		return fmt.Errorf("%w: term must be positive", domain.ErrValidation)
	}
	return nil
}

// lookupProgram treats an unknown program as a validation failure of the caller's input.
func (u *Usecase) lookupProgram(ctx context.Context, programID string) (*progDomain.Program, error) {
	p, err := u.programs.GetByProgramID(ctx, programID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: program %s does not exist", domain.ErrValidation, programID)
	}
	return p, err
}

// authorize keeps institution staff to applications under their own programs.
// Admins (no institution) and applications outside any program pass.
func (u *Usecase) authorize(ctx context.Context, a *appDomain.Application, institutionID string) error {
	if institutionID == "" || a.ProgramID == nil {
		return nil
	}
	p, err := u.lookupProgram(ctx, *a.ProgramID)
	if err != nil {
		return err
	}
	if !p.ManagedBy(institutionID) {
		return fmt.Errorf("%w: application %s is under another institution's program", domain.ErrForbidden, a.ApplicationID)
	}
	return nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(a)
	return &dto, nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) ([]ApplicationDTO, error) {
	if in.Status != "" && !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, in.Status)
	}
	if in.ProjectType != "" && !in.ProjectType.Valid() {
		return nil, fmt.Errorf("%w: unknown project type %q", domain.ErrValidation, in.ProjectType)
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := u.apps.List(ctx, appDomain.Filter{
		OwnerID:     in.OwnerID,
		Status:      in.Status,
		ProjectType: in.ProjectType,
		ProgramID:   in.ProgramID,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]ApplicationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}

// StartReview moves a pending application to under_review.
func (u *Usecase) StartReview(ctx context.Context, in ReviewInput) (*ApplicationDTO, error) {
	a, err := u.apps.GetByApplicationID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	if err := u.authorize(ctx, a, in.InstitutionID); err != nil {
		return nil, err
	}
	from := a.Status
	if err := guardTransition(a, appDomain.StatusUnderReview); err != nil {
		return nil, err
	}

	a.Status = appDomain.StatusUnderReview
	a.ReviewerID = optional(in.ReviewerID)
	a.StatusUpdatedAt = u.now().UTC()
	if err := u.apps.UpdateStatus(ctx, a, from); err != nil {
		return nil, err
	}

	u.metrics.Transition(string(from), string(a.Status))
	dto := toDTO(a)
	return &dto, nil
}

// Approve prices the loan, flips the status and opens the account in one transaction.
// The approval event is published only after commit.
func (u *Usecase) Approve(ctx context.Context, in ApproveInput) (*ApprovalDTO, error) {
	a, err := u.apps.GetByApplicationID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	if err := u.authorize(ctx, a, in.InstitutionID); err != nil {
		return nil, err
	}
	from := a.Status
	if err := guardTransition(a, appDomain.StatusApproved); err != nil {
		return nil, err
	}

	rate, err := u.resolveRate(ctx, a, in.InterestRate)
	if err != nil {
		return nil, err
	}
	quote, err := loancalc.Calculate(a.RequestedAmount, rate, a.TermMonths)
	if err != nil {
		return nil, err
	}

	now := u.now().UTC()
	next := now.AddDate(0, 1, 0)
	acc := &accDomain.Account{
		AccountID:          id.NewID32(),
		Principal:          quote.Principal,
		AnnualRate:         quote.AnnualRate,
		TermMonths:         quote.TermMonths,
		TotalAmount:        quote.TotalRepayment,
		OutstandingBalance: quote.TotalRepayment,
		MonthlyPayment:     quote.MonthlyPayment,
		NextPaymentDate:    &next,
		Status:             accDomain.StatusActive,
	}

	a.Status = appDomain.StatusApproved
	a.AppliedRate = decimal.NewNullDecimal(rate)
	a.ReviewerID = optional(in.ReviewerID)
	a.StatusUpdatedAt = now

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.UpdateStatus(ctx, a, from); err != nil {
			return err
		}
		acc.ApplicationID = a.ID
		return r.Accounts.Create(ctx, acc)
	})
	if err != nil {
		return nil, err
	}

	u.metrics.Transition(string(from), string(a.Status))
	u.log.Info("application approved",
		zap.String("application_id", a.ApplicationID),
		zap.String("account_id", acc.AccountID),
		zap.String("rate", rate.String()),
		zap.String("monthly_payment", quote.MonthlyPayment.String()),
	)
	u.publish(ctx, event.Event{
		Type:           event.TypeApplicationApproved,
		ApplicationID:  a.ApplicationID,
		Reference:      a.Reference,
		OwnerID:        a.OwnerID,
		ReviewerID:     in.ReviewerID,
		AccountID:      acc.AccountID,
		MonthlyPayment: quote.MonthlyPayment.String(),
		OccurredAt:     now,
	})

	return &ApprovalDTO{
		Application: toDTO(a),
		Account: AccountDTO{
			AccountID:          acc.AccountID,
			Principal:          acc.Principal,
			AnnualRate:         acc.AnnualRate,
			TermMonths:         acc.TermMonths,
			MonthlyPayment:     acc.MonthlyPayment,
			TotalInterest:      quote.TotalInterest,
			TotalAmount:        acc.TotalAmount,
			OutstandingBalance: acc.OutstandingBalance,
			NextPaymentDate:    acc.NextPaymentDate,
		},
	}, nil
}

// Reject requires a non-blank reason and never opens an account.
func (u *Usecase) Reject(ctx context.Context, in RejectInput) (*ApplicationDTO, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	}
	a, err := u.apps.GetByApplicationID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	if err := u.authorize(ctx, a, in.InstitutionID); err != nil {
		return nil, err
	}
	from := a.Status
	if err := guardTransition(a, appDomain.StatusRejected); err != nil {
		return nil, err
	}

	now := u.now().UTC()
	a.Status = appDomain.StatusRejected
	a.RejectionReason = &reason
	a.ReviewerID = optional(in.ReviewerID)
	a.StatusUpdatedAt = now
	if err := u.apps.UpdateStatus(ctx, a, from); err != nil {
		return nil, err
	}

	u.metrics.Transition(string(from), string(a.Status))
	u.log.Info("application rejected", zap.String("application_id", a.ApplicationID))
	u.publish(ctx, event.Event{
		Type:          event.TypeApplicationRejected,
		ApplicationID: a.ApplicationID,
		Reference:     a.Reference,
		OwnerID:       a.OwnerID,
		ReviewerID:    in.ReviewerID,
		Reason:        reason,
		OccurredAt:    now,
	})

	dto := toDTO(a)
	return &dto, nil
}

func guardTransition(a *appDomain.Application, next appDomain.Status) error {
	if !a.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s for application %s", domain.ErrInvalidTransition, a.Status, next, a.ApplicationID)
	}
	return nil
}

// resolveRate picks the override, then the program rate, then the table rate for the project type.
func (u *Usecase) resolveRate(ctx context.Context, a *appDomain.Application, override *decimal.Decimal) (decimal.Decimal, error) {
	if override != nil {
		if override.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: interest rate must not be negative", domain.ErrValidation)
		}
		if override.GreaterThan(loancalc.MaxRate) {
			return decimal.Zero, fmt.Errorf("%w: interest rate %s above %s", domain.ErrValidation, override, loancalc.MaxRate)
		}
		return *override, nil
	}
	if a.ProgramID != nil {
		p, err := u.lookupProgram(ctx, *a.ProgramID)
		if err != nil {
			return decimal.Zero, err
		}
		return p.InterestRate, nil
	}
	if r, ok := u.rates.Rate(string(a.ProjectType)); ok {
		return r, nil
	}
	return decimal.Zero, fmt.Errorf("%w: no interest rate for project type %s", domain.ErrValidation, a.ProjectType)
}

// publish never fails the caller; the state change is already committed.
func (u *Usecase) publish(ctx context.Context, e event.Event) {
	if u.pub == nil {
		return
	}
	if _, err := u.pub.Publish(ctx, e); err != nil {
		u.metrics.EventPublishFailed(string(e.Type))
		u.log.Error("publish event failed",
			zap.String("type", string(e.Type)),
			zap.String("application_id", e.ApplicationID),
			zap.Error(err),
		)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
