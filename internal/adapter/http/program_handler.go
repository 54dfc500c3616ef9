package http

import (
	"fmt"
	"net/http"

	"agrocredito/internal/domain"
	appDomain "agrocredito/internal/domain/application"
	ucProg "agrocredito/internal/usecase/program"
	"agrocredito/pkg/auth"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProgramHandler struct{ uc *ucProg.Usecase }

func NewProgramHandler(uc *ucProg.Usecase) *ProgramHandler { return &ProgramHandler{uc: uc} }

type createProgramReq struct {
	// InstitutionID is taken from the token for institution staff; admins must set it.
	InstitutionID string              `json:"institution_id" validate:"max=64"`
	Name          string              `json:"name"           validate:"required,max=200"`
	ProjectTypes  []string            `json:"project_types"  validate:"required,min=1,dive,projecttype"`
	MinAmount     decimal.Decimal     `json:"min_amount"     validate:"required,dpos,dec2"`
	MaxAmount     decimal.Decimal     `json:"max_amount"     validate:"required,dpos,dec2"`
	MinTerm       int                 `json:"min_term"       validate:"required,gte=1,lte=360"`
	MaxTerm       int                 `json:"max_term"       validate:"required,gte=1,lte=360"`
	InterestRate  decimal.Decimal     `json:"interest_rate"  validate:"dnonneg,dlte=100"`
	EffortRate    decimal.NullDecimal `json:"effort_rate"    validate:"omitempty,dpos,dlte=100"`
	ProcessingFee decimal.Decimal     `json:"processing_fee" validate:"dnonneg,dlte=100"`
}

func (h *ProgramHandler) Create(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	var req createProgramReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	institution := req.InstitutionID
	if claims.Role == auth.RoleInstitution {
		institution = claims.InstitutionID
	}
	if institution == "" {
		return writeError(c, fmt.Errorf("%w: institution_id is required", domain.ErrValidation))
	}
	types := make([]appDomain.ProjectType, len(req.ProjectTypes))
	for i, t := range req.ProjectTypes {
		types[i] = appDomain.ProjectType(t)
	}
	in := ucProg.CreateInput{
		InstitutionID: institution,
		Name:          req.Name,
		ProjectTypes:  types,
		MinAmount:     req.MinAmount,
		MaxAmount:     req.MaxAmount,
		MinTerm:       req.MinTerm,
		MaxTerm:       req.MaxTerm,
		InterestRate:  req.InterestRate,
		ProcessingFee: req.ProcessingFee,
	}
	if req.EffortRate.Valid {
		in.EffortRate = req.EffortRate.Decimal
	}
	p, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// List returns active programs to applicants; staff may include closed ones with ?active=false.
func (h *ProgramHandler) List(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	in := ucProg.ListInput{
		InstitutionID: c.QueryParam("institution_id"),
		ActiveOnly:    !claims.IsStaff() || c.QueryParam("active") != "false",
	}
	items, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

type updateProgramReq struct {
	Active *bool `json:"active" validate:"required"`
}

// Update opens or closes a program. Institution staff may only touch their own.
func (h *ProgramHandler) Update(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	var req updateProgramReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	ctx := c.Request().Context()
	programID := c.Param("program_id")
	current, err := h.uc.Get(ctx, programID)
	if err != nil {
		return writeError(c, err)
	}
	if claims.Role != auth.RoleAdmin && current.InstitutionID != claims.InstitutionID {
		return writeError(c, fmt.Errorf("%w: program belongs to another institution", domain.ErrForbidden))
	}
	p, err := h.uc.SetActive(ctx, programID, *req.Active)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
