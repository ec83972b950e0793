package model

import "time"

type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// WithdrawalRequest is a student's request to pull an application back.
// AfterPlacement is computed once at creation time and records whether
// the student had already accepted this exact internship; it never
// changes afterwards even if the student's placement does.
type WithdrawalRequest struct {
	ID             string           `json:"id"`
	ApplicationID  string           `json:"application_id"`
	StudentID      string           `json:"student_id"`
	InternshipID   string           `json:"internship_id"`
	AfterPlacement bool             `json:"after_placement"`
	Status         WithdrawalStatus `json:"status"`
	RequestDate    time.Time        `json:"request_date"`
	Reason         string           `json:"reason"`
}

func (w *WithdrawalRequest) IsPending() bool {
	return w.Status == WithdrawalStatusPending
}

func (w *WithdrawalRequest) Clone() *WithdrawalRequest {
	c := *w
	return &c
}
