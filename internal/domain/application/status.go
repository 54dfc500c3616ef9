package application

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool { return s == StatusApproved || s == StatusRejected }

// CanTransitionTo reports whether s -> next is a legal move. The review step is optional.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusUnderReview || next == StatusApproved || next == StatusRejected
	case StatusUnderReview:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved, StatusRejected:
		return false
	}
	return false
}
