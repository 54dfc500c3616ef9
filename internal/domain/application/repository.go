package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Filter struct {
	OwnerID     string
	Status      Status
	ProjectType ProjectType
	ProgramID   string
	Limit       int
	Offset      int
}

// Range bounds created_at; zero values are open ends.
type Range struct {
	From time.Time
	To   time.Time
}

type StatusTotals struct {
	Status          Status
	Count           int64
	RequestedAmount decimal.Decimal
}

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id uint64) (*Application, error)
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	List(ctx context.Context, f Filter) ([]Application, error)

	// UpdateStatus persists the status fields of a only while the stored status still
	// equals from. Zero affected rows yields domain.ErrConcurrentModification.
	UpdateStatus(ctx context.Context, a *Application, from Status) error

	TotalsByStatus(ctx context.Context, r Range) ([]StatusTotals, error)
}
