package mysql

import (
	"context"
	"errors"
	"testing"

	"agrocredito/internal/domain"
	docDomain "agrocredito/internal/domain/document"
)

func makeDocument(id string, appID uint64, typ docDomain.Type, version int) *docDomain.Document {
	return &docDomain.Document{
		DocumentID:       id,
		ApplicationID:    appID,
		Type:             typ,
		Version:          version,
		OriginalFilename: "scan.pdf",
		SizeBytes:        2048,
		MimeType:         "application/pdf",
		Required:         typ.Required(),
		UploadedBy:       "farmer-1",
	}
}

func TestDocumentRepository_Versions(t *testing.T) {
	repo := NewDocumentRepository(openTestDB(t))
	ctx := context.Background()

	v, err := repo.MaxVersion(ctx, 1, docDomain.TypeIdentity)
	if err != nil || v != 0 {
		t.Fatalf("MaxVersion on empty = %d, %v", v, err)
	}

	for i, d := range []*docDomain.Document{
		makeDocument("D1", 1, docDomain.TypeIdentity, 1),
		makeDocument("D2", 1, docDomain.TypeIdentity, 2),
		makeDocument("D3", 1, docDomain.TypeTaxID, 1),
		makeDocument("D4", 2, docDomain.TypeIdentity, 1),
	} {
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}

	if v, _ := repo.MaxVersion(ctx, 1, docDomain.TypeIdentity); v != 2 {
		t.Fatalf("MaxVersion = %d, want 2", v)
	}

	all, err := repo.ListByApplication(ctx, 1)
	if err != nil || len(all) != 3 {
		t.Fatalf("ListByApplication = %d, %v", len(all), err)
	}

	versions, err := repo.ListVersions(ctx, 1, docDomain.TypeIdentity)
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if len(versions) != 2 || versions[0].Version != 2 {
		t.Fatalf("versions should be newest first: %+v", versions)
	}
}

func TestDocumentRepository_DuplicateVersion(t *testing.T) {
	repo := NewDocumentRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, makeDocument("D1", 1, docDomain.TypeIdentity, 1)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, makeDocument("D2", 1, docDomain.TypeIdentity, 1))
	if !errors.Is(err, domain.ErrConcurrentModification) {
		t.Fatalf("want ErrConcurrentModification, got %v", err)
	}
}
