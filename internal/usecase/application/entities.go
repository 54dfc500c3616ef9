package application

import (
	"time"

	appDomain "agrocredito/internal/domain/application"

	"github.com/shopspring/decimal"
)

type SubmitInput struct {
	OwnerID         string
	ProgramID       string
	ProjectName     string
	ProjectType     appDomain.ProjectType
	Description     string
	RequestedAmount decimal.Decimal
	TermMonths      int
	Profile         appDomain.FinancialProfile
}

type ListInput struct {
	OwnerID     string
	Status      appDomain.Status
	ProjectType appDomain.ProjectType
	ProgramID   string
	Limit       int
	Offset      int
}

// InstitutionID on the review inputs scopes institution staff to their own
// programs; admins leave it empty.
type ReviewInput struct {
	ApplicationID string
	ReviewerID    string
	InstitutionID string
}

type ApproveInput struct {
	ApplicationID string
	ReviewerID    string
	InstitutionID string
	// InterestRate overrides the program and table rate when set.
	InterestRate *decimal.Decimal
}

type RejectInput struct {
	ApplicationID string
	ReviewerID    string
	InstitutionID string
	Reason        string
}

type ApplicationDTO struct {
	ApplicationID   string                     `json:"application_id"`
	Reference       string                     `json:"reference"`
	OwnerID         string                     `json:"owner_id"`
	ProgramID       *string                    `json:"program_id,omitempty"`
	ProjectName     string                     `json:"project_name"`
	ProjectType     string                     `json:"project_type"`
	Description     string                     `json:"description,omitempty"`
	RequestedAmount decimal.Decimal            `json:"requested_amount"`
	TermMonths      int                        `json:"term_months"`
	Status          string                     `json:"status"`
	RejectionReason *string                    `json:"rejection_reason,omitempty"`
	AppliedRate     *decimal.Decimal           `json:"applied_rate,omitempty"`
	ReviewerID      *string                    `json:"reviewer_id,omitempty"`
	Profile         appDomain.FinancialProfile `json:"financial_profile"`
	StatusUpdatedAt time.Time                  `json:"status_updated_at"`
	CreatedAt       time.Time                  `json:"created_at"`
}

type AccountDTO struct {
	AccountID          string          `json:"account_id"`
	Principal          decimal.Decimal `json:"principal"`
	AnnualRate         decimal.Decimal `json:"annual_rate"`
	TermMonths         int             `json:"term_months"`
	MonthlyPayment     decimal.Decimal `json:"monthly_payment"`
	TotalInterest      decimal.Decimal `json:"total_interest"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	NextPaymentDate    *time.Time      `json:"next_payment_date"`
}

type ApprovalDTO struct {
	Application ApplicationDTO `json:"application"`
	Account     AccountDTO     `json:"account"`
}

func toDTO(a *appDomain.Application) ApplicationDTO {
	dto := ApplicationDTO{
		ApplicationID:   a.ApplicationID,
		Reference:       a.Reference,
		OwnerID:         a.OwnerID,
		ProgramID:       a.ProgramID,
		ProjectName:     a.ProjectName,
		ProjectType:     string(a.ProjectType),
		Description:     a.Description,
		RequestedAmount: a.RequestedAmount,
		TermMonths:      a.TermMonths,
		Status:          string(a.Status),
		RejectionReason: a.RejectionReason,
		ReviewerID:      a.ReviewerID,
		Profile:         a.Profile,
		StatusUpdatedAt: a.StatusUpdatedAt,
		CreatedAt:       a.CreatedAt,
	}
	if a.AppliedRate.Valid {
		r := a.AppliedRate.Decimal
		dto.AppliedRate = &r
	}
	return dto
}
