package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zacxu/internship_hub/internal/apperr"
	"github.com/zacxu/internship_hub/internal/service"
)

type WithdrawalHandler struct {
	withdrawals *service.WithdrawalService
}

func NewWithdrawalHandler(withdrawals *service.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawals: withdrawals}
}

type withdrawalRequest struct {
	ApplicationID string `json:"application_id"`
	Reason        string `json:"reason"`
}

func (h *WithdrawalHandler) Request(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	var req withdrawalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, apperr.Invalid("invalid request body: %v", err))
		return
	}
	created, err := h.withdrawals.Request(r.Context(), actor, req.ApplicationID, req.Reason)
	writeMutation(w, http.StatusCreated, created, err)
}

func (h *WithdrawalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	approved, err := h.withdrawals.Approve(r.Context(), actor, chi.URLParam(r, "id"))
	writeMutation(w, http.StatusOK, approved, err)
}

func (h *WithdrawalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	rejected, err := h.withdrawals.Reject(r.Context(), actor, chi.URLParam(r, "id"))
	writeMutation(w, http.StatusOK, rejected, err)
}

func (h *WithdrawalHandler) Get(w http.ResponseWriter, r *http.Request) {
	request, err := h.withdrawals.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, request)
}

func (h *WithdrawalHandler) Pending(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	pending, err := h.withdrawals.Pending(actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, pending)
}

func (h *WithdrawalHandler) ByStudent(w http.ResponseWriter, r *http.Request) {
	studentID := r.URL.Query().Get("student_id")
	if studentID == "" {
		writeError(w, apperr.Invalid("student_id is required"))
		return
	}
	writeData(w, http.StatusOK, h.withdrawals.ByStudent(studentID))
}
