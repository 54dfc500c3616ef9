package report

import (
	"context"
	"fmt"
	"time"

	"agrocredito/internal/domain"
	appDomain "agrocredito/internal/domain/application"

	"github.com/shopspring/decimal"
)

type StatusLine struct {
	Status          string          `json:"status"`
	Count           int64           `json:"count"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
}

type SummaryDTO struct {
	From            *time.Time      `json:"from,omitempty"`
	To              *time.Time      `json:"to,omitempty"`
	Total           int64           `json:"total"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	ApprovedAmount  decimal.Decimal `json:"approved_amount"`
	ByStatus        []StatusLine    `json:"by_status"`
}

type Usecase struct{ apps appDomain.Repository }

func NewUsecase(apps appDomain.Repository) *Usecase { return &Usecase{apps: apps} }

// Summary aggregates applications created in [from, to). Zero bounds are open.
func (u *Usecase) Summary(ctx context.Context, from, to time.Time) (*SummaryDTO, error) {
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", domain.ErrValidation)
	}
	totals, err := u.apps.TotalsByStatus(ctx, appDomain.Range{From: from, To: to})
	if err != nil {
		return nil, err
	}

	byStatus := make(map[appDomain.Status]appDomain.StatusTotals, len(totals))
	for _, t := range totals {
		byStatus[t.Status] = t
	}

	out := &SummaryDTO{
		RequestedAmount: decimal.Zero,
		ByStatus:        make([]StatusLine, 0, 4),
	}
	if !from.IsZero() {
		out.From = &from
	}
	if !to.IsZero() {
		out.To = &to
	}
	// every status is listed, zero rows included
	for _, st := range []appDomain.Status{
		appDomain.StatusPending, appDomain.StatusUnderReview, appDomain.StatusApproved, appDomain.StatusRejected,
	} {
		t := byStatus[st]
		out.ByStatus = append(out.ByStatus, StatusLine{Status: string(st), Count: t.Count, RequestedAmount: t.RequestedAmount})
		out.Total += t.Count
		out.RequestedAmount = out.RequestedAmount.Add(t.RequestedAmount)
	}
	out.ApprovedAmount = byStatus[appDomain.StatusApproved].RequestedAmount
	return out, nil
}
