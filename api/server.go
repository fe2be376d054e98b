/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     zap access log (logging.RequestLogger)
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the dashboards

ROUTE GROUPS:
  /api/roi/*            Projection and comparison
  /api/plans/*          Saved plans
  /api/presets/*        Built-in plans
  /api/quiz             Quiz questions
  /api/roles/{role}/*   Quiz history, advisor, session state
  /api/currencies       Display currencies
  /api/health           Liveness

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/careerpath/serve.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/warp/careerpath/logging"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	CORSOrigins []string
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:8080"}
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(logging.RequestLogger(h.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/currencies", h.ListCurrencies)

		// Projection routes
		r.Route("/roi", func(r chi.Router) {
			r.Post("/project", h.ProjectROI)
			r.Post("/compare", h.CompareROI)
		})

		// Plan routes
		r.Route("/plans", func(r chi.Router) {
			r.Get("/", h.ListPlans)
			r.Post("/", h.CreatePlan)
			r.Get("/{id}", h.GetPlan)
			r.Get("/{id}/projection", h.GetPlanProjection)
			r.Delete("/{id}", h.DeletePlan)
		})

		// Preset routes
		r.Route("/presets", func(r chi.Router) {
			r.Get("/", h.ListPresets)
			r.Get("/current", h.GetCurrentPreset)
			r.Post("/load", h.LoadPreset)
			r.Post("/reset", h.ResetDatabase)
		})

		r.Get("/quiz", h.GetQuiz)

		// Role routes
		r.Route("/roles/{role}", func(r chi.Router) {
			r.Get("/quiz", h.ListQuizResults)
			r.Post("/quiz", h.SubmitQuiz)

			r.Get("/advisor", h.GetAdvisor)
			r.Delete("/advisor", h.ClearAdvisor)
			r.Post("/advisor/messages", h.PostAdvisorMessage)

			r.Get("/session", h.GetSession)
			r.Put("/session/{key}", h.PutSessionValue)
			r.Delete("/session/{key}", h.DeleteSessionValue)
		})
	})

	return r
}
