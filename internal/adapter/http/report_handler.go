package http

import (
	"net/http"

	ucReport "agrocredito/internal/usecase/report"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct{ uc *ucReport.Usecase }

func NewReportHandler(uc *ucReport.Usecase) *ReportHandler { return &ReportHandler{uc: uc} }

// Summary takes an explicit ?from=&to= window on creation time; both are optional.
func (h *ReportHandler) Summary(c echo.Context) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Summary(c.Request().Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
