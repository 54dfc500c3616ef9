package document

import (
	"fmt"
	"time"

	"agrocredito/internal/domain"
)

var ErrNotFound = fmt.Errorf("document %w", domain.ErrNotFound)

type Type string

const (
	TypeIdentity           Type = "identity"
	TypeTaxID              Type = "tax_id"
	TypeLandTitle          Type = "land_title"
	TypeBusinessPlan       Type = "business_plan"
	TypeBankStatement      Type = "bank_statement"
	TypeCooperativeStatute Type = "cooperative_statute"
	TypeOther              Type = "other"
)

var Types = []Type{
	TypeIdentity, TypeTaxID, TypeLandTitle, TypeBusinessPlan,
	TypeBankStatement, TypeCooperativeStatute, TypeOther,
}

func (t Type) Valid() bool {
	for _, x := range Types {
		if t == x {
			return true
		}
	}
	return false
}

// Required types must be present before an institution can decide.
func (t Type) Required() bool {
	switch t {
	case TypeIdentity, TypeTaxID, TypeBusinessPlan:
		return true
	}
	return false
}

// Table: application_documents. Metadata only; file bytes live in the upload store.
type Document struct {
	ID               uint64    `gorm:"primaryKey;column:id" json:"-"`
	DocumentID       string    `gorm:"size:32;not null;uniqueIndex:ux_application_documents_document_id" json:"document_id"`
	ApplicationID    uint64    `gorm:"not null;uniqueIndex:ux_application_documents_version,priority:1" json:"-"`
	Type             Type      `gorm:"size:30;not null;uniqueIndex:ux_application_documents_version,priority:2" json:"type"`
	Version          int       `gorm:"not null;uniqueIndex:ux_application_documents_version,priority:3" json:"version"`
	OriginalFilename string    `gorm:"size:255;not null" json:"original_filename"`
	SizeBytes        int64     `gorm:"not null" json:"size_bytes"`
	MimeType         string    `gorm:"size:100;not null" json:"mime_type"`
	Required         bool      `gorm:"not null" json:"required"`
	UploadedBy       string    `gorm:"size:64;not null" json:"uploaded_by"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (Document) TableName() string { return "application_documents" }

// Latest keeps the highest version per type, ordered like Types.
func Latest(docs []Document) []Document {
	best := make(map[Type]Document, len(docs))
	for _, d := range docs {
		if cur, ok := best[d.Type]; !ok || d.Version > cur.Version {
			best[d.Type] = d
		}
	}
	out := make([]Document, 0, len(best))
	for _, t := range Types {
		if d, ok := best[t]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Missing lists required types absent from docs.
func Missing(docs []Document) []Type {
	have := make(map[Type]bool, len(docs))
	for _, d := range docs {
		have[d.Type] = true
	}
	var out []Type
	for _, t := range Types {
		if t.Required() && !have[t] {
			out = append(out, t)
		}
	}
	return out
}
