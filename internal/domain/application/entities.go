package application

import (
	"fmt"
	"time"

	"agrocredito/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = fmt.Errorf("application %w", domain.ErrNotFound)

type ProjectType string

const (
	ProjectCorn         ProjectType = "corn"
	ProjectCassava      ProjectType = "cassava"
	ProjectCattle       ProjectType = "cattle"
	ProjectPoultry      ProjectType = "poultry"
	ProjectHorticulture ProjectType = "horticulture"
	ProjectOther        ProjectType = "other"
)

var ProjectTypes = []ProjectType{
	ProjectCorn, ProjectCassava, ProjectCattle, ProjectPoultry, ProjectHorticulture, ProjectOther,
}

func (p ProjectType) Valid() bool {
	for _, t := range ProjectTypes {
		if p == t {
			return true
		}
	}
	return false
}

type ProductivityTier string

const (
	ProductivityLow    ProductivityTier = "low"
	ProductivityMedium ProductivityTier = "medium"
	ProductivityHigh   ProductivityTier = "high"
)

type DeliveryMethod string

const (
	DeliveryCooperative DeliveryMethod = "cooperative"
	DeliveryDirectBuyer DeliveryMethod = "direct_buyer"
	DeliveryLocalMarket DeliveryMethod = "local_market"
	DeliveryProcessor   DeliveryMethod = "processor"
	DeliveryOther       DeliveryMethod = "other"
)

// FinancialProfile is the optional self-declared financial situation of the applicant.
// Every field is nullable; the columns live on the applications table (profile_ prefix).
type FinancialProfile struct {
	MonthlyIncome         decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"monthly_income"`
	ExpectedProjectIncome decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"expected_project_income"`
	MonthlyExpenses       decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"monthly_expenses"`
	OtherDebts            decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"other_debts"`
	FamilyMembers         *int                `json:"family_members,omitempty"`
	ExperienceYears       *int                `json:"experience_years,omitempty"`
	ProductivityTier      *ProductivityTier   `gorm:"size:10" json:"productivity_tier,omitempty"`
	DeliveryMethod        *DeliveryMethod     `gorm:"size:20" json:"delivery_method,omitempty"`
}

// Table: applications
type Application struct {
	ID              uint64              `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID   string              `gorm:"size:32;not null;uniqueIndex:ux_applications_application_id" json:"application_id"`
	Reference       string              `gorm:"size:32;not null;uniqueIndex:ux_applications_reference" json:"reference"`
	OwnerID         string              `gorm:"size:64;not null;index:idx_applications_owner" json:"owner_id"`
	ProgramID       *string             `gorm:"size:32;index:idx_applications_program" json:"program_id,omitempty"`
	ProjectName     string              `gorm:"size:200;not null" json:"project_name"`
	ProjectType     ProjectType         `gorm:"size:20;not null;index:idx_applications_project_type" json:"project_type"`
	Description     string              `gorm:"type:text" json:"description"`
	RequestedAmount decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"requested_amount"`
	TermMonths      int                 `gorm:"not null" json:"term_months"`
	Status          Status              `gorm:"size:20;not null;default:'pending';index:idx_applications_status" json:"status"`
	RejectionReason *string             `gorm:"type:text" json:"rejection_reason,omitempty"`
	AppliedRate     decimal.NullDecimal `gorm:"type:decimal(6,3)" json:"applied_rate"`
	ReviewerID      *string             `gorm:"size:64" json:"reviewer_id,omitempty"`
	StatusUpdatedAt time.Time           `json:"status_updated_at"`
	Profile         FinancialProfile    `gorm:"embedded;embeddedPrefix:profile_" json:"financial_profile"`
	CreatedAt       time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt      `gorm:"index" json:"-"`
}

func (Application) TableName() string { return "applications" }
