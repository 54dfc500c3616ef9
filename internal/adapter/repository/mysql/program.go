package mysql

import (
	"context"

	progDomain "agrocredito/internal/domain/program"

	"gorm.io/gorm"
)

type ProgramRepository struct{ db *gorm.DB }

func NewProgramRepository(db *gorm.DB) *ProgramRepository { return &ProgramRepository{db: db} }

func (r *ProgramRepository) Create(ctx context.Context, p *progDomain.Program) error {
	return storeErr(r.db.WithContext(ctx).Create(p).Error, progDomain.ErrNotFound)
}

func (r *ProgramRepository) GetByProgramID(ctx context.Context, programID string) (*progDomain.Program, error) {
	var out progDomain.Program
	if err := r.db.WithContext(ctx).Where("program_id = ?", programID).First(&out).Error; err != nil {
		return nil, storeErr(err, progDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ProgramRepository) List(ctx context.Context, f progDomain.Filter) ([]progDomain.Program, error) {
	q := r.db.WithContext(ctx).Model(&progDomain.Program{})
	if f.InstitutionID != "" {
		q = q.Where("institution_id = ?", f.InstitutionID)
	}
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	var out []progDomain.Program
	if err := q.Order("name ASC, id ASC").Find(&out).Error; err != nil {
		return nil, storeErr(err, progDomain.ErrNotFound)
	}
	return out, nil
}

func (r *ProgramRepository) Save(ctx context.Context, p *progDomain.Program) error {
	return storeErr(r.db.WithContext(ctx).Save(p).Error, progDomain.ErrNotFound)
}
