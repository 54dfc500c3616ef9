package http

import (
	"net/http"

	"agrocredito/internal/adapter/middleware"
	"agrocredito/pkg/auth"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health       *Handler
	Simulations  *SimulationHandler
	Applications *ApplicationHandler
	Documents    *DocumentHandler
	Accounts     *AccountHandler
	Programs     *ProgramHandler
	Reports      *ReportHandler
}

// RegisterRoutes mounts the public probes and the authenticated API.
// authn must populate caller claims; idemp guards every mutating route.
func RegisterRoutes(e *echo.Echo, h Handlers, authn, idemp echo.MiddlewareFunc, metrics http.Handler) {
	e.GET("/health", h.Health.Health)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	staff := middleware.RequireRole(auth.RoleInstitution, auth.RoleAdmin)
	applicant := middleware.RequireRole(auth.RoleApplicant)

	api := e.Group("", authn)

	api.POST("/simulations", h.Simulations.Simulate)

	api.POST("/applications", h.Applications.Submit, applicant, idemp)
	api.GET("/applications", h.Applications.List)
	api.GET("/applications/:application_id", h.Applications.Get)
	api.POST("/applications/:application_id/review", h.Applications.StartReview, staff, idemp)
	api.POST("/applications/:application_id/approve", h.Applications.Approve, staff, idemp)
	api.POST("/applications/:application_id/reject", h.Applications.Reject, staff, idemp)
	api.POST("/applications/:application_id/documents", h.Documents.Record, applicant, idemp)
	api.GET("/applications/:application_id/documents", h.Documents.List)
	api.GET("/applications/:application_id/account", h.Accounts.GetByApplication)

	api.POST("/accounts/:account_id/payments", h.Accounts.RecordPayment, staff, idemp)
	api.GET("/accounts/:account_id/schedule", h.Accounts.Schedule)

	api.POST("/programs", h.Programs.Create, staff, idemp)
	api.GET("/programs", h.Programs.List)
	api.PATCH("/programs/:program_id", h.Programs.Update, staff, idemp)

	api.GET("/reports/summary", h.Reports.Summary, staff)
}
