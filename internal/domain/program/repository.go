package program

import "context"

type Filter struct {
	InstitutionID string
	ActiveOnly    bool
}

type Repository interface {
	Create(ctx context.Context, p *Program) error
	GetByProgramID(ctx context.Context, programID string) (*Program, error)
	List(ctx context.Context, f Filter) ([]Program, error)
	Save(ctx context.Context, p *Program) error
}
