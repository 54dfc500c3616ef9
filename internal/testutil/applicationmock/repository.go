package applicationmock

import (
	"context"

	domain "agrocredito/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to nil, reads default to context.Canceled.
type Repo struct {
	CreateFn             func(ctx context.Context, a *domain.Application) error
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.Application, error)
	GetByApplicationIDFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	ListFn               func(ctx context.Context, f domain.Filter) ([]domain.Application, error)
	UpdateStatusFn       func(ctx context.Context, a *domain.Application, from domain.Status) error
	TotalsByStatusFn     func(ctx context.Context, r domain.Range) ([]domain.StatusTotals, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Application, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateStatus(ctx context.Context, a *domain.Application, from domain.Status) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, a, from)
	}
	return nil
}

func (m *Repo) TotalsByStatus(ctx context.Context, r domain.Range) ([]domain.StatusTotals, error) {
	if m.TotalsByStatusFn != nil {
		return m.TotalsByStatusFn(ctx, r)
	}
	return nil, context.Canceled
}
