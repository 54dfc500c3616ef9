package document

import "context"

type Repository interface {
	// Create fails with domain.ErrConcurrentModification when (application, type, version) exists.
	Create(ctx context.Context, d *Document) error
	MaxVersion(ctx context.Context, applicationNumericID uint64, t Type) (int, error)
	ListByApplication(ctx context.Context, applicationNumericID uint64) ([]Document, error)
	ListVersions(ctx context.Context, applicationNumericID uint64, t Type) ([]Document, error)
}
