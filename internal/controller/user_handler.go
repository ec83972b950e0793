package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zacxu/internship_hub/internal/service"
)

type UserHandler struct {
	engine *service.Engine
}

func NewUserHandler(engine *service.Engine) *UserHandler {
	return &UserHandler{engine: engine}
}

func (h *UserHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	student, err := h.engine.Student(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, student)
}

// ApproveRep clears a company representative to start creating
// internships. Staff only.
func (h *UserHandler) ApproveRep(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	approved, err := h.engine.ApproveRepresentative(r.Context(), actor, chi.URLParam(r, "id"))
	writeMutation(w, http.StatusOK, approved, err)
}
