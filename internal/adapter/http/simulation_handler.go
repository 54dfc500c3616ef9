package http

import (
	"net/http"

	appDomain "agrocredito/internal/domain/application"
	ucSim "agrocredito/internal/usecase/simulation"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type SimulationHandler struct{ uc *ucSim.Usecase }

func NewSimulationHandler(uc *ucSim.Usecase) *SimulationHandler { return &SimulationHandler{uc: uc} }

type simulateReq struct {
	Amount        decimal.Decimal     `json:"amount"         validate:"required,dpos,dec2"`
	TermMonths    int                 `json:"term_months"    validate:"required,gte=1,lte=360"`
	ProjectType   string              `json:"project_type"   validate:"required,projecttype"`
	ProgramID     string              `json:"program_id"     validate:"omitempty,hex32"`
	MonthlyIncome decimal.NullDecimal `json:"monthly_income" validate:"omitempty,dpos"`
}

func (h *SimulationHandler) Simulate(c echo.Context) error {
	var req simulateReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Simulate(c.Request().Context(), ucSim.SimulateInput{
		Amount:        req.Amount,
		TermMonths:    req.TermMonths,
		ProjectType:   appDomain.ProjectType(req.ProjectType),
		ProgramID:     req.ProgramID,
		MonthlyIncome: req.MonthlyIncome,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
