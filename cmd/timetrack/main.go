// cmd/timetrack/main.go - Entry point
package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/noor-latif/timetrack/internal/config"
	"github.com/noor-latif/timetrack/internal/handlers"
	"github.com/noor-latif/timetrack/internal/store"
	"github.com/noor-latif/timetrack/internal/vacation"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	// Config
	cfg, err := config.Load(getEnv("TIMETRACK_CONFIG", "timetrack.yaml"))
	if err != nil {
		log.Fatalw("config load failed", "err", err)
	}

	// Init database
	db, err := store.New(cfg.Database.Path)
	if err != nil {
		log.Fatalw("database init failed", "err", err)
	}
	defer db.Close()
	log.Infow("database initialized", "path", cfg.Database.Path)

	// Vacation provider is optional; without it the endpoint reports 503
	var timeOff handlers.TimeOffSource
	if cfg.Vacation.BaseURL != "" {
		timeOff = vacation.New(cfg.Vacation.BaseURL, cfg.Vacation.ClientID,
			cfg.Vacation.ClientSecret, log, nil)
	}

	h := handlers.New(db, timeOff, cfg.Stripe, log)

	addr := ":" + cfg.Server.Port
	log.Infow("timetrack starting", "addr", addr)
	if err := http.ListenAndServe(addr, newRouter(h)); err != nil {
		log.Fatalw("server error", "err", err)
	}
}

func newRouter(h *handlers.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Stripe webhook (unversioned path, configured in the Stripe dashboard)
	r.Post("/webhook", h.StripeWebhook)

	r.Route("/api", func(r chi.Router) {
		// Reporting
		r.Get("/reports/allocations", h.AllocationReport)
		r.Get("/analytics/hours", h.HoursAnalytics)
		r.Get("/vacations", h.Vacations)

		// Users
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Get("/{id}", h.GetUser)
			r.Put("/{id}", h.UpdateUser)
			r.Post("/{id}/approve", h.ApproveUser)
			r.Post("/{id}/deactivate", h.DeactivateUser)
		})

		// Projects and their roles
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.ListProjects)
			r.Post("/", h.CreateProject)
			r.Get("/{id}", h.GetProject)
			r.Put("/{id}", h.UpdateProject)
			r.Delete("/{id}", h.DeleteProject)
			r.Post("/{id}/status", h.SetProjectStatus)
			r.Get("/{id}/roles", h.ListProjectRoles)
			r.Post("/{id}/roles", h.CreateProjectRole)
			r.Delete("/{id}/roles/{roleID}", h.DeleteProjectRole)
			r.Post("/{id}/payment-link", h.CreatePaymentLink)
		})

		// Allocations
		r.Route("/allocations", func(r chi.Router) {
			r.Get("/", h.ListAllocations)
			r.Post("/", h.CreateAllocation)
			r.Put("/{id}", h.UpdateAllocation)
			r.Delete("/{id}", h.DeleteAllocation)
		})

		// Time entries
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", h.ListTimeEntries)
			r.Post("/", h.CreateTimeEntry)
			r.Put("/{id}", h.UpdateTimeEntry)
			r.Delete("/{id}", h.DeleteTimeEntry)
			r.Post("/{id}/submit", h.SubmitTimeEntry)
			r.Post("/{id}/approve", h.ApproveTimeEntry)
			r.Post("/{id}/reject", h.RejectTimeEntry)
		})
	})

	return r
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
