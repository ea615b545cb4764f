package routes

import (
	"net/http"

	"github.com/AnshRaj112/ai-survey-backend/internal/handlers"
	"github.com/go-chi/chi/v5"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Survey *handlers.SurveyHandler
	Form   *handlers.FormHandler
	// SubmitLimits wrap the submission routes only, in order.
	SubmitLimits []func(http.Handler) http.Handler
}

func SetupRoutes(r chi.Router, h Handlers) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Form UI
	r.Get("/", h.Form.ShowForm)
	r.Handle("/static/*", http.StripPrefix("/static/", handlers.StaticFiles()))

	// Survey read API
	r.Get("/api/survey/responses", h.Survey.GetResponses)
	r.Get("/api/survey/stats", h.Survey.GetStats)

	// Submissions
	r.Group(func(r chi.Router) {
		for _, mw := range h.SubmitLimits {
			r.Use(mw)
		}
		r.Post("/", h.Form.SubmitForm)
		r.Post("/api/survey/submit", h.Survey.SubmitSurvey)
		r.Post("/api/submit-survey", h.Survey.SubmitSurvey)
	})
}
