package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gp-assess/platform/internal/assessment"
	"github.com/gp-assess/platform/internal/audit"
	"github.com/gp-assess/platform/internal/session"
	"github.com/gp-assess/platform/internal/shared/auth"
	"github.com/gp-assess/platform/internal/shared/config"
	"github.com/gp-assess/platform/internal/shared/database"
	"github.com/gp-assess/platform/internal/shared/events"
	"github.com/gp-assess/platform/internal/shared/metrics"
	secmiddleware "github.com/gp-assess/platform/internal/shared/middleware"
)

// App holds all application dependencies
type App struct {
	Config *config.Config
	DB     *database.DB
	Bus    *events.Bus
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	app := &App{Config: cfg, Bus: events.NewBus()}

	// Initialize database (optional - skip if not available)
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		fmt.Printf("Warning: Database not available: %v\n", err)
		fmt.Println("Running in limited mode: sessions will not survive a restart...")
	} else {
		app.DB = db
		defer db.Close()

		// Run migrations
		if err := database.Migrate(ctx, db.Pool); err != nil {
			fmt.Printf("Warning: Migration failed: %v\n", err)
		}
	}

	limiter := secmiddleware.NewIPRateLimiter(
		cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(secmiddleware.SecurityHeaders)
	r.Use(metrics.Middleware)
	r.Use(corsMiddleware)
	r.Use(limiter.Middleware)

	// Health checks (unauthenticated)
	r.Get("/health", healthHandler(app))
	r.Get("/ready", readyHandler(app))
	r.Handle("/metrics", metrics.Handler())

	// API info
	r.Get("/", infoHandler(app))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Responses carry patient data; keep them out of shared caches.
		r.Use(secmiddleware.NoStore)

		if cfg.Server.Env == "production" {
			r.Use(auth.Middleware(cfg.Auth))
		}

		r.Get("/assessments", listAssessments)

		if app.DB != nil {
			svc := assessment.NewService().WithPractice(cfg.Practice.Name)

			sessionRepo := session.NewRepository(app.DB.Pool)
			sessionHandler := session.NewHandler(sessionRepo, svc, app.Bus)
			r.Mount("/sessions", sessionHandler.Routes())

			auditRepo := audit.NewRepository(app.DB.Pool)
			auditHandler := audit.NewHandler(auditRepo)
			r.Mount("/audit", auditHandler.Routes())

			auditSubscriber := audit.NewSubscriber(auditRepo, app.Bus)
			auditSubscriber.Start()
			fmt.Println("Audit subscriber started")
		}
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		fmt.Println("\nShutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("Server shutdown error: %v\n", err)
		}
		close(done)
	}()

	fmt.Println("============================================")
	fmt.Println("GP Assessment Platform")
	fmt.Println("============================================")
	fmt.Printf("Environment:  %s\n", cfg.Server.Env)
	fmt.Printf("Server:       http://localhost:%d\n", cfg.Server.Port)
	fmt.Printf("API:          http://localhost:%d/api/v1\n", cfg.Server.Port)
	fmt.Printf("Health:       http://localhost:%d/health\n", cfg.Server.Port)
	if cfg.Practice.Name != "" {
		fmt.Printf("Practice:     %s\n", cfg.Practice.Name)
	}
	fmt.Println("============================================")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}

	<-done
	fmt.Println("Server stopped")
}

// listAssessments returns the catalogue of available assessment types.
// Static data, so it works with or without a database.
func listAssessments(w http.ResponseWriter, r *http.Request) {
	type item struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	defs := assessment.Definitions()
	items := make([]item, 0, len(defs))
	for _, def := range defs {
		items = append(items, item{ID: def.ID, Name: def.Name, Description: def.Describe()})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"data":  items,
		"total": len(items),
	})
}

func infoHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"name":     "GP Assessment Platform",
			"version":  "0.1.0",
			"practice": app.Config.Practice.Name,
			"docs":     "/api/v1",
		})
	}
}

func healthHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
		})
	}
}

func readyHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"server": "ready",
		}

		// Check database
		if app.DB != nil {
			if err := app.DB.Health(r.Context()); err != nil {
				checks["database"] = "not ready: " + err.Error()
			} else {
				checks["database"] = "ready"
			}
		} else {
			checks["database"] = "not configured"
		}

		allReady := true
		for _, status := range checks {
			if status != "ready" && status != "not configured" {
				allReady = false
				break
			}
		}

		status := http.StatusOK
		if !allReady {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"status": map[bool]string{true: "ready", false: "not ready"}[allReady],
			"checks": checks,
		})
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
