package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/http/middleware"
)

type RouterConfig struct {
	Leads          *LeadHandler
	Appointments   *AppointmentHandler
	Scheduling     *SchedulingHandler
	Integrations   *IntegrationHandler
	Dashboard      *DashboardHandler
	Auth           *AuthHandler
	Health         *HealthHandler
	Socket         http.Handler
	Identity       entity.IdentityProvider
	AllowedOrigins []string
}

func NewRouter(c RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   c.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Metrics)

	if c.Health != nil {
		r.Get("/health", c.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())
	if c.Socket != nil {
		r.Handle("/ws", c.Socket)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signin", c.Auth.SignIn)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireIdentity(c.Identity))

			r.Post("/auth/signout", c.Auth.SignOut)
			r.Get("/auth/me", c.Auth.Me)

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", c.Leads.List)
				r.Post("/", c.Leads.Create)
				r.Get("/export", c.Leads.Export)
				r.Get("/{id}", c.Leads.Get)
				r.Put("/{id}", c.Leads.Update)
				r.Delete("/{id}", c.Leads.Delete)
			})

			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", c.Appointments.List)
				r.Post("/", c.Appointments.Create)
				r.Get("/today", c.Appointments.Today)
				r.Get("/{id}", c.Appointments.Get)
				r.Put("/{id}", c.Appointments.Update)
				r.Delete("/{id}", c.Appointments.Delete)
			})

			r.Get("/scheduling/options", c.Scheduling.Options)
			r.Post("/scheduling", c.Scheduling.Submit)

			r.Route("/integrations", func(r chi.Router) {
				r.Get("/", c.Integrations.List)
				r.Get("/{provider}", c.Integrations.Get)
				r.Put("/{provider}/settings", c.Integrations.SaveSettings)
				r.Post("/{provider}/toggle", c.Integrations.Toggle)
			})

			r.Get("/dashboard", c.Dashboard.Summary)
		})
	})

	return r
}
