package program

import (
	"context"
	"strings"

	appDomain "agrocredito/internal/domain/application"
	progDomain "agrocredito/internal/domain/program"
	"agrocredito/pkg/id"

	"github.com/shopspring/decimal"
)

type CreateInput struct {
	InstitutionID string
	Name          string
	ProjectTypes  []appDomain.ProjectType
	MinAmount     decimal.Decimal
	MaxAmount     decimal.Decimal
	MinTerm       int
	MaxTerm       int
	InterestRate  decimal.Decimal
	EffortRate    decimal.Decimal
	ProcessingFee decimal.Decimal
}

type ListInput struct {
	InstitutionID string
	ActiveOnly    bool
}

type Usecase struct {
	repo             progDomain.Repository
	defaultEffortPct decimal.Decimal
}

func NewUsecase(r progDomain.Repository, defaultEffortRate decimal.Decimal) *Usecase {
	return &Usecase{repo: r, defaultEffortPct: defaultEffortRate}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*progDomain.Program, error) {
	p := &progDomain.Program{
		ProgramID:     id.NewID32(),
		InstitutionID: in.InstitutionID,
		Name:          strings.TrimSpace(in.Name),
		ProjectTypes:  progDomain.ProjectTypes(in.ProjectTypes),
		MinAmount:     in.MinAmount,
		MaxAmount:     in.MaxAmount,
		MinTerm:       in.MinTerm,
		MaxTerm:       in.MaxTerm,
		InterestRate:  in.InterestRate,
		EffortRate:    in.EffortRate,
		ProcessingFee: in.ProcessingFee,
		Active:        true,
	}
	if p.EffortRate.IsZero() {
		p.EffortRate = u.defaultEffortPct
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *Usecase) Get(ctx context.Context, programID string) (*progDomain.Program, error) {
	return u.repo.GetByProgramID(ctx, programID)
}

func (u *Usecase) List(ctx context.Context, in ListInput) ([]progDomain.Program, error) {
	return u.repo.List(ctx, progDomain.Filter{InstitutionID: in.InstitutionID, ActiveOnly: in.ActiveOnly})
}

// SetActive opens or closes a program for new submissions; existing applications keep it.
func (u *Usecase) SetActive(ctx context.Context, programID string, active bool) (*progDomain.Program, error) {
	p, err := u.repo.GetByProgramID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if p.Active == active {
		return p, nil
	}
	p.Active = active
	if err := u.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
