package program

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"agrocredito/internal/domain"
	"agrocredito/internal/domain/application"
	"agrocredito/pkg/loancalc"

	"github.com/shopspring/decimal"
)

var ErrNotFound = fmt.Errorf("program %w", domain.ErrNotFound)

// ProjectTypes is stored as a comma separated column ("corn,cattle").
type ProjectTypes []application.ProjectType

func (p ProjectTypes) Contains(t application.ProjectType) bool {
	for _, x := range p {
		if x == t {
			return true
		}
	}
	return false
}

func (p ProjectTypes) Value() (driver.Value, error) {
	parts := make([]string, len(p))
	for i, t := range p {
		parts[i] = string(t)
	}
	return strings.Join(parts, ","), nil
}

func (p *ProjectTypes) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("program: cannot scan %T into ProjectTypes", src)
	}
	out := ProjectTypes{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, application.ProjectType(s))
		}
	}
	*p = out
	return nil
}

// Table: credit_programs
type Program struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	ProgramID     string          `gorm:"size:32;not null;uniqueIndex:ux_credit_programs_program_id" json:"program_id"`
	InstitutionID string          `gorm:"size:64;not null;index:idx_credit_programs_institution" json:"institution_id"`
	Name          string          `gorm:"size:200;not null" json:"name"`
	ProjectTypes  ProjectTypes    `gorm:"type:varchar(255);not null" json:"project_types"`
	MinAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"min_amount"`
	MaxAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"max_amount"`
	MinTerm       int             `gorm:"not null" json:"min_term"`
	MaxTerm       int             `gorm:"not null" json:"max_term"`
	InterestRate  decimal.Decimal `gorm:"type:decimal(6,3);not null" json:"interest_rate"`
	EffortRate    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"effort_rate"`
	ProcessingFee decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"processing_fee"`
	Active        bool            `gorm:"not null;index:idx_credit_programs_active" json:"active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Program) TableName() string { return "credit_programs" }

// Validate checks the program's own invariants.
func (p *Program) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: program name is required", domain.ErrValidation)
	case len(p.ProjectTypes) == 0:
		return fmt.Errorf("%w: at least one eligible project type is required", domain.ErrValidation)
	case !p.MinAmount.IsPositive():
		return fmt.Errorf("%w: min amount must be positive", domain.ErrValidation)
	case p.MinAmount.GreaterThan(p.MaxAmount):
		return fmt.Errorf("%w: min amount %s exceeds max amount %s", domain.ErrValidation, p.MinAmount, p.MaxAmount)
	case p.MinTerm <= 0:
		return fmt.Errorf("%w: min term must be positive", domain.ErrValidation)
	case p.MinTerm > p.MaxTerm:
		return fmt.Errorf("%w: min term %d exceeds max term %d", domain.ErrValidation, p.MinTerm, p.MaxTerm)
	case p.InterestRate.IsNegative() || p.EffortRate.IsNegative() || p.ProcessingFee.IsNegative():
		return fmt.Errorf("%w: rates must not be negative", domain.ErrValidation)
	case p.InterestRate.GreaterThan(loancalc.MaxRate):
		return fmt.Errorf("%w: interest rate %s above %s", domain.ErrValidation, p.InterestRate, loancalc.MaxRate)
	case p.EffortRate.GreaterThan(loancalc.MaxRate):
		return fmt.Errorf("%w: effort rate %s above %s", domain.ErrValidation, p.EffortRate, loancalc.MaxRate)
	case p.ProcessingFee.GreaterThan(loancalc.MaxRate):
		return fmt.Errorf("%w: processing fee %s above %s", domain.ErrValidation, p.ProcessingFee, loancalc.MaxRate)
	}
	for _, t := range p.ProjectTypes {
		if !t.Valid() {
			return fmt.Errorf("%w: unknown project type %q", domain.ErrValidation, t)
		}
	}
	return nil
}

// ManagedBy reports whether staff of institutionID may act on the program's applications.
func (p *Program) ManagedBy(institutionID string) bool {
	return institutionID != "" && p.InstitutionID == institutionID
}

// Admits reports whether an application for this program is within its bounds.
func (p *Program) Admits(projectType application.ProjectType, amount decimal.Decimal, term int) error {
	switch {
	case !p.Active:
		return fmt.Errorf("%w: program %s is not active", domain.ErrValidation, p.ProgramID)
	case !p.ProjectTypes.Contains(projectType):
		return fmt.Errorf("%w: program %s does not finance %s projects", domain.ErrValidation, p.ProgramID, projectType)
	case amount.LessThan(p.MinAmount) || amount.GreaterThan(p.MaxAmount):
		return fmt.Errorf("%w: amount %s outside program range [%s, %s]", domain.ErrValidation, amount, p.MinAmount, p.MaxAmount)
	case term < p.MinTerm || term > p.MaxTerm:
		return fmt.Errorf("%w: term %d outside program range [%d, %d]", domain.ErrValidation, term, p.MinTerm, p.MaxTerm)
	}
	return nil
}

// ProcessingFeeFor returns the upfront fee for amount, in whole Kwanza.
func (p *Program) ProcessingFeeFor(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(p.ProcessingFee).Div(decimal.NewFromInt(100)).Round(0)
}
