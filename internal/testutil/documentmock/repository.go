package documentmock

import (
	"context"

	domain "agrocredito/internal/domain/document"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, d *domain.Document) error
	MaxVersionFn        func(ctx context.Context, applicationNumericID uint64, t domain.Type) (int, error)
	ListByApplicationFn func(ctx context.Context, applicationNumericID uint64) ([]domain.Document, error)
	ListVersionsFn      func(ctx context.Context, applicationNumericID uint64, t domain.Type) ([]domain.Document, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Document) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) MaxVersion(ctx context.Context, applicationNumericID uint64, t domain.Type) (int, error) {
	if m.MaxVersionFn != nil {
		return m.MaxVersionFn(ctx, applicationNumericID, t)
	}
	return 0, nil
}

func (m *Repo) ListByApplication(ctx context.Context, applicationNumericID uint64) ([]domain.Document, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationNumericID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListVersions(ctx context.Context, applicationNumericID uint64, t domain.Type) ([]domain.Document, error) {
	if m.ListVersionsFn != nil {
		return m.ListVersionsFn(ctx, applicationNumericID, t)
	}
	return nil, context.Canceled
}
