// Package event describes what the credit core tells the outside world. Delivery
// (sms, e-mail, in-app) belongs to the notification service.
package event

import (
	"context"
	"time"
)

type Type string

const (
	TypeApplicationApproved Type = "applicationApproved"
	TypeApplicationRejected Type = "applicationRejected"
)

type Event struct {
	Type           Type      `json:"type"`
	ApplicationID  string    `json:"application_id"`
	Reference      string    `json:"reference"`
	OwnerID        string    `json:"owner_id"`
	ReviewerID     string    `json:"reviewer_id,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	AccountID      string    `json:"account_id,omitempty"`
	MonthlyPayment string    `json:"monthly_payment,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Publisher returns the broker-assigned message id.
type Publisher interface {
	Publish(ctx context.Context, e Event) (string, error)
}
