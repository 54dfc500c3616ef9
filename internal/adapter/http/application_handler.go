package http

import (
	"net/http"

	appDomain "agrocredito/internal/domain/application"
	ucApp "agrocredito/internal/usecase/application"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ApplicationHandler struct{ uc *ucApp.Usecase }

func NewApplicationHandler(uc *ucApp.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type profileReq struct {
	MonthlyIncome         decimal.NullDecimal `json:"monthly_income"          validate:"omitempty,dnonneg,dec2"`
	ExpectedProjectIncome decimal.NullDecimal `json:"expected_project_income" validate:"omitempty,dnonneg,dec2"`
	MonthlyExpenses       decimal.NullDecimal `json:"monthly_expenses"        validate:"omitempty,dnonneg,dec2"`
	OtherDebts            decimal.NullDecimal `json:"other_debts"             validate:"omitempty,dnonneg,dec2"`
	FamilyMembers         *int                `json:"family_members"          validate:"omitempty,gte=0,lte=100"`
	ExperienceYears       *int                `json:"experience_years"        validate:"omitempty,gte=0,lte=100"`
	ProductivityTier      *string             `json:"productivity_tier"       validate:"omitempty,oneof=low medium high"`
	DeliveryMethod        *string             `json:"delivery_method"         validate:"omitempty,oneof=cooperative direct_buyer local_market processor other"`
}

func (p profileReq) toDomain() appDomain.FinancialProfile {
	out := appDomain.FinancialProfile{
		MonthlyIncome:         p.MonthlyIncome,
		ExpectedProjectIncome: p.ExpectedProjectIncome,
		MonthlyExpenses:       p.MonthlyExpenses,
		OtherDebts:            p.OtherDebts,
		FamilyMembers:         p.FamilyMembers,
		ExperienceYears:       p.ExperienceYears,
	}
	if p.ProductivityTier != nil {
		t := appDomain.ProductivityTier(*p.ProductivityTier)
		out.ProductivityTier = &t
	}
	if p.DeliveryMethod != nil {
		m := appDomain.DeliveryMethod(*p.DeliveryMethod)
		out.DeliveryMethod = &m
	}
	return out
}

type submitApplicationReq struct {
	ProgramID       string          `json:"program_id"       validate:"omitempty,hex32"`
	ProjectName     string          `json:"project_name"     validate:"required,max=200"`
	ProjectType     string          `json:"project_type"     validate:"required,projecttype"`
	Description     string          `json:"description"      validate:"max=5000"`
	RequestedAmount decimal.Decimal `json:"requested_amount" validate:"required,dpos,dec2"`
	TermMonths      int             `json:"term_months"      validate:"required,gte=1,lte=360"`
	Profile         profileReq      `json:"financial_profile"`
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	var req submitApplicationReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Submit(c.Request().Context(), ucApp.SubmitInput{
		OwnerID:         claims.UserID(),
		ProgramID:       req.ProgramID,
		ProjectName:     req.ProjectName,
		ProjectType:     appDomain.ProjectType(req.ProjectType),
		Description:     req.Description,
		RequestedAmount: req.RequestedAmount,
		TermMonths:      req.TermMonths,
		Profile:         req.Profile.toDomain(),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// List shows applicants their own applications; staff may filter across all of them.
func (h *ApplicationHandler) List(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return writeError(c, err)
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return writeError(c, err)
	}
	in := ucApp.ListInput{
		Status:      appDomain.Status(c.QueryParam("status")),
		ProjectType: appDomain.ProjectType(c.QueryParam("project_type")),
		ProgramID:   c.QueryParam("program_id"),
		Limit:       limit,
		Offset:      offset,
	}
	if claims.IsStaff() {
		in.OwnerID = c.QueryParam("owner_id")
	} else {
		in.OwnerID = claims.UserID()
	}
	items, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items, "limit": limit, "offset": offset})
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return writeError(c, err)
	}
	if err := mayRead(claims, dto.OwnerID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) StartReview(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	inst, err := actingInstitution(claims)
	if err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.StartReview(c.Request().Context(), ucApp.ReviewInput{
		ApplicationID: c.Param("application_id"),
		ReviewerID:    claims.UserID(),
		InstitutionID: inst,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type approveReq struct {
	// InterestRate overrides the program and table rate (annual percent).
	InterestRate decimal.NullDecimal `json:"interest_rate" validate:"omitempty,dnonneg,dlte=100"`
}

func (h *ApplicationHandler) Approve(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	inst, err := actingInstitution(claims)
	if err != nil {
		return writeError(c, err)
	}
	// the body is optional; an empty one binds to no override
	var req approveReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in := ucApp.ApproveInput{ApplicationID: c.Param("application_id"), ReviewerID: claims.UserID(), InstitutionID: inst}
	if req.InterestRate.Valid {
		r := req.InterestRate.Decimal
		in.InterestRate = &r
	}
	dto, err := h.uc.Approve(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type rejectReq struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

func (h *ApplicationHandler) Reject(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	inst, err := actingInstitution(claims)
	if err != nil {
		return writeError(c, err)
	}
	var req rejectReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Reject(c.Request().Context(), ucApp.RejectInput{
		ApplicationID: c.Param("application_id"),
		ReviewerID:    claims.UserID(),
		InstitutionID: inst,
		Reason:        req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
