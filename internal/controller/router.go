// Package controller exposes every placement engine operation over
// HTTP. It is a thin caller layer: actor identity comes from the
// X-User-ID header, all rules live in the services.
package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zacxu/internship_hub/internal/service"
)

func NewRouter(engine *service.Engine, logger *zap.Logger) http.Handler {
	internships := NewInternshipHandler(engine.Internships)
	applications := NewApplicationHandler(engine.Applications)
	withdrawals := NewWithdrawalHandler(engine.Withdrawals)
	users := NewUserHandler(engine)

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/internships", func(r chi.Router) {
		r.Get("/", internships.List)
		r.Post("/", internships.Create)
		r.Get("/pending", internships.Pending)
		r.Get("/{id}", internships.Get)
		r.Put("/{id}", internships.Update)
		r.Delete("/{id}", internships.Delete)
		r.Post("/{id}/toggle-visibility", internships.ToggleVisibility)
		r.Post("/{id}/approve", internships.Approve)
		r.Post("/{id}/reject", internships.Reject)
	})

	r.Route("/applications", func(r chi.Router) {
		r.Get("/", applications.List)
		r.Post("/", applications.Apply)
		r.Get("/{id}", applications.Get)
		r.Post("/{id}/decide", applications.Decide)
		r.Post("/{id}/accept", applications.Accept)
	})

	r.Route("/withdrawals", func(r chi.Router) {
		r.Get("/", withdrawals.ByStudent)
		r.Post("/", withdrawals.Request)
		r.Get("/pending", withdrawals.Pending)
		r.Get("/{id}", withdrawals.Get)
		r.Post("/{id}/approve", withdrawals.Approve)
		r.Post("/{id}/reject", withdrawals.Reject)
	})

	r.Get("/students/{id}", users.GetStudent)
	r.Post("/company-reps/{id}/approve", users.ApproveRep)

	return r
}
