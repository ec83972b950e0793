package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zacxu/internship_hub/internal/apperr"
	"github.com/zacxu/internship_hub/internal/model"
	"github.com/zacxu/internship_hub/internal/service"
)

type InternshipHandler struct {
	internships *service.InternshipService
}

func NewInternshipHandler(internships *service.InternshipService) *InternshipHandler {
	return &InternshipHandler{internships: internships}
}

type internshipRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Level          string `json:"level"`
	PreferredMajor string `json:"preferred_major"`
	OpeningDate    string `json:"opening_date"` // YYYY-MM-DD
	ClosingDate    string `json:"closing_date"`
	TotalSlots     int    `json:"total_slots"`
}

func (req *internshipRequest) fields() (service.InternshipFields, error) {
	opening, err := time.Parse("2006-01-02", req.OpeningDate)
	if err != nil {
		return service.InternshipFields{}, apperr.Invalid("opening_date must be YYYY-MM-DD")
	}
	closing, err := time.Parse("2006-01-02", req.ClosingDate)
	if err != nil {
		return service.InternshipFields{}, apperr.Invalid("closing_date must be YYYY-MM-DD")
	}
	return service.InternshipFields{
		Title:          req.Title,
		Description:    req.Description,
		Level:          model.InternshipLevel(req.Level),
		PreferredMajor: req.PreferredMajor,
		OpeningDate:    opening,
		ClosingDate:    closing,
		TotalSlots:     req.TotalSlots,
	}, nil
}

func (h *InternshipHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	var req internshipRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, apperr.Invalid("invalid request body: %v", err))
		return
	}
	fields, err := req.fields()
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := h.internships.Create(r.Context(), actor, fields)
	writeMutation(w, http.StatusCreated, created, err)
}

func (h *InternshipHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	var req internshipRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, apperr.Invalid("invalid request body: %v", err))
		return
	}
	fields, err := req.fields()
	if err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.internships.Update(r.Context(), actor, chi.URLParam(r, "id"), fields)
	writeMutation(w, http.StatusOK, updated, err)
}

func (h *InternshipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	err := h.internships.Delete(r.Context(), actor, chi.URLParam(r, "id"))
	writeMutation(w, http.StatusOK, map[string]string{"deleted": chi.URLParam(r, "id")}, err)
}

func (h *InternshipHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	updated, err := h.internships.ToggleVisibility(r.Context(), actor, chi.URLParam(r, "id"))
	writeMutation(w, http.StatusOK, updated, err)
}

func (h *InternshipHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	updated, err := h.internships.Approve(r.Context(), actor, chi.URLParam(r, "id"))
	writeMutation(w, http.StatusOK, updated, err)
}

func (h *InternshipHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	updated, err := h.internships.Reject(r.Context(), actor, chi.URLParam(r, "id"))
	writeMutation(w, http.StatusOK, updated, err)
}

func (h *InternshipHandler) Get(w http.ResponseWriter, r *http.Request) {
	internship, err := h.internships.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, internship)
}

// List serves visible internships by default; ?scope=all returns
// everything and ?scope=mine the acting representative's own.
func (h *InternshipHandler) List(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("scope") {
	case "all":
		writeData(w, http.StatusOK, h.internships.All())
	case "mine":
		actor, ok := actorID(r)
		if !ok {
			writeUnauthorized(w)
			return
		}
		writeData(w, http.StatusOK, h.internships.ByCompanyRep(actor))
	default:
		writeData(w, http.StatusOK, h.internships.Visible())
	}
}

func (h *InternshipHandler) Pending(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	pending, err := h.internships.Pending(actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, pending)
}
