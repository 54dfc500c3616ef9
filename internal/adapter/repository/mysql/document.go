package mysql

import (
	"context"

	docDomain "agrocredito/internal/domain/document"

	"gorm.io/gorm"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

// Create relies on the (application, type, version) unique index; a lost race
// surfaces as ErrConcurrentModification.
func (r *DocumentRepository) Create(ctx context.Context, d *docDomain.Document) error {
	return storeErr(r.db.WithContext(ctx).Create(d).Error, docDomain.ErrNotFound)
}

func (r *DocumentRepository) MaxVersion(ctx context.Context, applicationNumericID uint64, t docDomain.Type) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&docDomain.Document{}).
		Where("application_id = ? AND type = ?", applicationNumericID, t).
		Select("COALESCE(MAX(version), 0)").
		Row().
		Scan(&max)
	if err != nil {
		return 0, storeErr(err, docDomain.ErrNotFound)
	}
	return max, nil
}

func (r *DocumentRepository) ListByApplication(ctx context.Context, applicationNumericID uint64) ([]docDomain.Document, error) {
	var out []docDomain.Document
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationNumericID).
		Order("type ASC, version ASC").
		Find(&out).Error
	if err != nil {
		return nil, storeErr(err, docDomain.ErrNotFound)
	}
	return out, nil
}

func (r *DocumentRepository) ListVersions(ctx context.Context, applicationNumericID uint64, t docDomain.Type) ([]docDomain.Document, error) {
	var out []docDomain.Document
	err := r.db.WithContext(ctx).
		Where("application_id = ? AND type = ?", applicationNumericID, t).
		Order("version DESC").
		Find(&out).Error
	if err != nil {
		return nil, storeErr(err, docDomain.ErrNotFound)
	}
	return out, nil
}
