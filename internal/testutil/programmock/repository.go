package programmock

import (
	"context"

	domain "agrocredito/internal/domain/program"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, p *domain.Program) error
	GetByProgramIDFn func(ctx context.Context, programID string) (*domain.Program, error)
	ListFn           func(ctx context.Context, f domain.Filter) ([]domain.Program, error)
	SaveFn           func(ctx context.Context, p *domain.Program) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Program) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByProgramID(ctx context.Context, programID string) (*domain.Program, error) {
	if m.GetByProgramIDFn != nil {
		return m.GetByProgramIDFn(ctx, programID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Program, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, p *domain.Program) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
