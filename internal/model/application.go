package model

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending      ApplicationStatus = "pending"      // Awaiting company decision
	ApplicationStatusSuccessful   ApplicationStatus = "successful"   // Offer made, student may accept
	ApplicationStatusUnsuccessful ApplicationStatus = "unsuccessful" // Turned down
)

// ValidOutcome reports whether status is a terminal decision a company
// representative or staff member may set on a pending application.
func ValidOutcome(status ApplicationStatus) bool {
	return status == ApplicationStatusSuccessful || status == ApplicationStatusUnsuccessful
}

// Application links a student to an internship. StudentID and
// InternshipID never change after creation; applications are deleted
// outright, not archived, when an acceptance cascade or an approved
// withdrawal removes them.
type Application struct {
	ID              string            `json:"id"`
	StudentID       string            `json:"student_id"`
	InternshipID    string            `json:"internship_id"`
	Status          ApplicationStatus `json:"status"`
	ApplicationDate time.Time         `json:"application_date"`
}

func (a *Application) IsPending() bool {
	return a.Status == ApplicationStatusPending
}

func (a *Application) IsSuccessful() bool {
	return a.Status == ApplicationStatusSuccessful
}

// IsWithdrawable reports whether a withdrawal request may target this
// application. An unsuccessful application has nothing to undo.
func (a *Application) IsWithdrawable() bool {
	return a.Status == ApplicationStatusPending || a.Status == ApplicationStatusSuccessful
}

func (a *Application) Clone() *Application {
	c := *a
	return &c
}
