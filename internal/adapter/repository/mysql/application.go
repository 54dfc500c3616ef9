package mysql

import (
	"context"
	"fmt"

	"agrocredito/internal/domain"
	appDomain "agrocredito/internal/domain/application"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type statusTotalsRow struct {
	Status appDomain.Status
	Count  int64
	Amount decimal.NullDecimal
}

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return storeErr(r.db.WithContext(ctx).Create(a).Error, appDomain.ErrNotFound)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uint64) (*appDomain.Application, error) {
	var out appDomain.Application
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, storeErr(err, appDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out).Error; err != nil {
		return nil, storeErr(err, appDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApplicationRepository) List(ctx context.Context, f appDomain.Filter) ([]appDomain.Application, error) {
	q := r.db.WithContext(ctx).Model(&appDomain.Application{})
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ProjectType != "" {
		q = q.Where("project_type = ?", f.ProjectType)
	}
	if f.ProgramID != "" {
		q = q.Where("program_id = ?", f.ProgramID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	var out []appDomain.Application
	if err := q.Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, storeErr(err, appDomain.ErrNotFound)
	}
	return out, nil
}

// UpdateStatus is a compare-and-swap on the status column.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, a *appDomain.Application, from appDomain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("id = ? AND status = ?", a.ID, from).
		Updates(map[string]any{
			"status":            a.Status,
			"rejection_reason":  a.RejectionReason,
			"applied_rate":      a.AppliedRate,
			"reviewer_id":       a.ReviewerID,
			"status_updated_at": a.StatusUpdatedAt,
		})
	if res.Error != nil {
		return storeErr(res.Error, appDomain.ErrNotFound)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: application %s is no longer %s", domain.ErrConcurrentModification, a.ApplicationID, from)
	}
	return nil
}

func (r *ApplicationRepository) TotalsByStatus(ctx context.Context, rg appDomain.Range) ([]appDomain.StatusTotals, error) {
	q := r.db.WithContext(ctx).Model(&appDomain.Application{})
	if !rg.From.IsZero() {
		q = q.Where("created_at >= ?", rg.From)
	}
	if !rg.To.IsZero() {
		q = q.Where("created_at < ?", rg.To)
	}
	var rows []statusTotalsRow
	err := q.Select("status, COUNT(*) AS count, SUM(requested_amount) AS amount").
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr(err, appDomain.ErrNotFound)
	}
	out := make([]appDomain.StatusTotals, 0, len(rows))
	for _, row := range rows {
		out = append(out, appDomain.StatusTotals{
			Status:          row.Status,
			Count:           row.Count,
			RequestedAmount: row.Amount.Decimal,
		})
	}
	return out, nil
}
