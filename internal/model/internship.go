package model

import "time"

type InternshipStatus string

const (
	InternshipStatusPending  InternshipStatus = "pending"  // Awaiting career center review
	InternshipStatusApproved InternshipStatus = "approved" // Open for student applications
	InternshipStatusRejected InternshipStatus = "rejected" // Rejected by career center
	InternshipStatusFilled   InternshipStatus = "filled"   // All slots taken
)

type InternshipLevel string

const (
	LevelBasic        InternshipLevel = "basic"
	LevelIntermediate InternshipLevel = "intermediate"
	LevelAdvanced     InternshipLevel = "advanced"
)

// ValidLevel reports whether lvl is one of the three known levels.
func ValidLevel(lvl InternshipLevel) bool {
	switch lvl {
	case LevelBasic, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type Internship struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Level          InternshipLevel  `json:"level"`
	PreferredMajor string           `json:"preferred_major"`
	OpeningDate    time.Time        `json:"opening_date"`
	ClosingDate    time.Time        `json:"closing_date"`
	Status         InternshipStatus `json:"status"`
	CompanyName    string           `json:"company_name"`
	CompanyRepID   string           `json:"company_rep_id"`
	TotalSlots     int              `json:"total_slots"`
	FilledSlots    int              `json:"filled_slots"`
	Visible        bool             `json:"visible"`
}

func (i *Internship) AvailableSlots() int {
	return i.TotalSlots - i.FilledSlots
}

func (i *Internship) IsPending() bool {
	return i.Status == InternshipStatusPending
}

func (i *Internship) IsApproved() bool {
	return i.Status == InternshipStatusApproved
}

func (i *Internship) IsFilled() bool {
	return i.Status == InternshipStatusFilled
}

// IncrementFilledSlots consumes one slot, clamping at TotalSlots.
// Reaching capacity transitions the internship to filled.
func (i *Internship) IncrementFilledSlots() {
	if i.FilledSlots < i.TotalSlots {
		i.FilledSlots++
	}
	if i.FilledSlots >= i.TotalSlots {
		i.Status = InternshipStatusFilled
	}
}

// DecrementFilledSlots frees one slot, clamping at zero. A filled
// internship with capacity again reverts to approved, never to
// pending or rejected.
func (i *Internship) DecrementFilledSlots() {
	if i.FilledSlots > 0 {
		i.FilledSlots--
	}
	if i.Status == InternshipStatusFilled && i.FilledSlots < i.TotalSlots {
		i.Status = InternshipStatusApproved
	}
}

func (i *Internship) ToggleVisibility() {
	i.Visible = !i.Visible
}

// Clone returns a copy safe to hand outside the engine lock.
func (i *Internship) Clone() *Internship {
	c := *i
	return &c
}
