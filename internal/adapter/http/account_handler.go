package http

import (
	"net/http"
	"time"

	ucAcc "agrocredito/internal/usecase/account"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AccountHandler struct{ uc *ucAcc.Usecase }

func NewAccountHandler(uc *ucAcc.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

func (h *AccountHandler) GetByApplication(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.GetByApplication(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return writeError(c, err)
	}
	if err := mayRead(claims, dto.OwnerID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type recordPaymentReq struct {
	Amount decimal.Decimal `json:"amount"  validate:"required,dpos,dec2"`
	PaidAt *time.Time      `json:"paid_at"`
}

func (h *AccountHandler) RecordPayment(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	inst, err := actingInstitution(claims)
	if err != nil {
		return writeError(c, err)
	}
	var req recordPaymentReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in := ucAcc.RecordPaymentInput{AccountID: c.Param("account_id"), Amount: req.Amount, InstitutionID: inst}
	if req.PaidAt != nil {
		in.PaidAt = *req.PaidAt
	}
	dto, err := h.uc.RecordPayment(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AccountHandler) Schedule(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.Schedule(c.Request().Context(), c.Param("account_id"))
	if err != nil {
		return writeError(c, err)
	}
	if err := mayRead(claims, dto.Account.OwnerID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
