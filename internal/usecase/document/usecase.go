package document

import (
	"context"
	"fmt"
	"strings"

	"agrocredito/internal/domain"
	appDomain "agrocredito/internal/domain/application"
	docDomain "agrocredito/internal/domain/document"
	"agrocredito/internal/domain/uow"
	"agrocredito/internal/infrastructure/metrics"
	"agrocredito/pkg/id"
)

// MaxSizeBytes caps what the upload handler may report for a single file.
const MaxSizeBytes = 20 << 20

type RecordInput struct {
	ApplicationID    string
	Type             docDomain.Type
	OriginalFilename string
	SizeBytes        int64
	MimeType         string
	UploadedBy       string
}

type Checklist struct {
	Documents []docDomain.Document `json:"documents"`
	Missing   []docDomain.Type     `json:"missing"`
	Complete  bool                 `json:"complete"`
}

type Usecase struct {
	apps    appDomain.Repository
	docs    docDomain.Repository
	uow     uow.UnitOfWork
	metrics *metrics.Collector
}

func NewUsecase(apps appDomain.Repository, docs docDomain.Repository, tx uow.UnitOfWork, m *metrics.Collector) *Usecase {
	return &Usecase{apps: apps, docs: docs, uow: tx, metrics: m}
}

// Record stores upload metadata as the next version of its document type.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*docDomain.Document, error) {
	if err := validateRecord(in); err != nil {
		return nil, err
	}
	a, err := u.apps.GetByApplicationID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	if a.Status == appDomain.StatusRejected {
		return nil, fmt.Errorf("%w: application %s is rejected", domain.ErrInvalidTransition, a.ApplicationID)
	}

	var doc *docDomain.Document
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		current, err := r.Documents.MaxVersion(ctx, a.ID, in.Type)
		if err != nil {
			return err
		}
		doc = &docDomain.Document{
			DocumentID:       id.NewID32(),
			ApplicationID:    a.ID,
			Type:             in.Type,
			Version:          current + 1,
			OriginalFilename: strings.TrimSpace(in.OriginalFilename),
			SizeBytes:        in.SizeBytes,
			MimeType:         strings.ToLower(strings.TrimSpace(in.MimeType)),
			Required:         in.Type.Required(),
			UploadedBy:       in.UploadedBy,
		}
		return r.Documents.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	u.metrics.DocumentRecorded(string(in.Type))
	return doc, nil
}

func validateRecord(in RecordInput) error {
	switch {
	case !in.Type.Valid():
		return fmt.Errorf("%w: unknown document type %q", domain.ErrValidation, in.Type)
	case strings.TrimSpace(in.OriginalFilename) == "":
		return fmt.Errorf("%w: filename is required", domain.ErrValidation)
	case strings.TrimSpace(in.MimeType) == "":
		return fmt.Errorf("%w: mime type is required", domain.ErrValidation)
	case in.SizeBytes <= 0 || in.SizeBytes > MaxSizeBytes:
		return fmt.Errorf("%w: size must be between 1 and %d bytes", domain.ErrValidation, MaxSizeBytes)
	case in.UploadedBy == "":
		return fmt.Errorf("%w: uploader is required", domain.ErrValidation)
	}
	return nil
}

// ListLatest returns the newest version of each type plus the required types still missing.
func (u *Usecase) ListLatest(ctx context.Context, applicationID string) (*Checklist, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	docs, err := u.docs.ListByApplication(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	missing := docDomain.Missing(docs)
	return &Checklist{
		Documents: docDomain.Latest(docs),
		Missing:   missing,
		Complete:  len(missing) == 0,
	}, nil
}

func (u *Usecase) Versions(ctx context.Context, applicationID string, t docDomain.Type) ([]docDomain.Document, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown document type %q", domain.ErrValidation, t)
	}
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return u.docs.ListVersions(ctx, a.ID, t)
}
