package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zacxu/internship_hub/internal/apperr"
	"github.com/zacxu/internship_hub/internal/model"
	"github.com/zacxu/internship_hub/internal/service"
)

type ApplicationHandler struct {
	applications *service.ApplicationService
}

func NewApplicationHandler(applications *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

type applyRequest struct {
	InternshipID string `json:"internship_id"`
}

type decideRequest struct {
	Outcome string `json:"outcome"` // successful | unsuccessful
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, apperr.Invalid("invalid request body: %v", err))
		return
	}
	created, err := h.applications.Apply(r.Context(), actor, req.InternshipID)
	writeMutation(w, http.StatusCreated, created, err)
}

func (h *ApplicationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	var req decideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, apperr.Invalid("invalid request body: %v", err))
		return
	}
	decided, err := h.applications.Decide(r.Context(), actor, chi.URLParam(r, "id"), model.ApplicationStatus(req.Outcome))
	writeMutation(w, http.StatusOK, decided, err)
}

func (h *ApplicationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	accepted, err := h.applications.AcceptPlacement(r.Context(), actor, chi.URLParam(r, "id"))
	writeMutation(w, http.StatusOK, accepted, err)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	application, err := h.applications.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, application)
}

// List filters by student_id, internship_id or status; exactly one
// filter is required so nobody accidentally pulls the whole table.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	switch {
	case query.Get("student_id") != "":
		writeData(w, http.StatusOK, h.applications.ByStudent(query.Get("student_id")))
	case query.Get("internship_id") != "":
		writeData(w, http.StatusOK, h.applications.ByInternship(query.Get("internship_id")))
	case query.Get("status") != "":
		writeData(w, http.StatusOK, h.applications.ByStatus(model.ApplicationStatus(query.Get("status"))))
	default:
		writeError(w, apperr.Invalid("one of student_id, internship_id or status is required"))
	}
}
