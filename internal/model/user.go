package model

type Role string

const (
	RoleStudent    Role = "student"
	RoleCompanyRep Role = "company_rep"
	RoleStaff      Role = "staff"
)

// User is the common view over the three actor kinds. Managers
// authorize on Role plus ownership; they never downcast outside the
// authorization boundary of an operation.
type User interface {
	UserID() string
	Role() Role
}

type Student struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	YearOfStudy          int      `json:"year_of_study"`
	Major                string   `json:"major"`
	AppliedInternshipIDs []string `json:"applied_internship_ids"`
	AcceptedInternshipID string   `json:"accepted_internship_id,omitempty"` // empty = no placement
}

func (s *Student) UserID() string { return s.ID }
func (s *Student) Role() Role     { return RoleStudent }

func (s *Student) HasAcceptedPlacement() bool {
	return s.AcceptedInternshipID != ""
}

func (s *Student) ApplicationCount() int {
	return len(s.AppliedInternshipIDs)
}

func (s *Student) HasAppliedTo(internshipID string) bool {
	for _, id := range s.AppliedInternshipIDs {
		if id == internshipID {
			return true
		}
	}
	return false
}

func (s *Student) AddAppliedInternship(internshipID string) {
	if !s.HasAppliedTo(internshipID) {
		s.AppliedInternshipIDs = append(s.AppliedInternshipIDs, internshipID)
	}
}

func (s *Student) RemoveAppliedInternship(internshipID string) {
	for i, id := range s.AppliedInternshipIDs {
		if id == internshipID {
			s.AppliedInternshipIDs = append(s.AppliedInternshipIDs[:i], s.AppliedInternshipIDs[i+1:]...)
			return
		}
	}
}

func (s *Student) Clone() *Student {
	c := *s
	c.AppliedInternshipIDs = append([]string(nil), s.AppliedInternshipIDs...)
	return &c
}

type CompanyRepresentative struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	CompanyName          string   `json:"company_name"`
	Department           string   `json:"department"`
	Position             string   `json:"position"`
	Approved             bool     `json:"approved"` // gates every representative action
	CreatedInternshipIDs []string `json:"created_internship_ids"`
}

func (r *CompanyRepresentative) UserID() string { return r.ID }
func (r *CompanyRepresentative) Role() Role     { return RoleCompanyRep }

func (r *CompanyRepresentative) CreatedCount() int {
	return len(r.CreatedInternshipIDs)
}

func (r *CompanyRepresentative) AddCreatedInternship(internshipID string) {
	for _, id := range r.CreatedInternshipIDs {
		if id == internshipID {
			return
		}
	}
	r.CreatedInternshipIDs = append(r.CreatedInternshipIDs, internshipID)
}

func (r *CompanyRepresentative) RemoveCreatedInternship(internshipID string) {
	for i, id := range r.CreatedInternshipIDs {
		if id == internshipID {
			r.CreatedInternshipIDs = append(r.CreatedInternshipIDs[:i], r.CreatedInternshipIDs[i+1:]...)
			return
		}
	}
}

func (r *CompanyRepresentative) Clone() *CompanyRepresentative {
	c := *r
	c.CreatedInternshipIDs = append([]string(nil), r.CreatedInternshipIDs...)
	return &c
}

type CareerCenterStaff struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *CareerCenterStaff) UserID() string { return s.ID }
func (s *CareerCenterStaff) Role() Role     { return RoleStaff }
