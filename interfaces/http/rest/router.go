package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"nasab-backend/application/services"
	"nasab-backend/interfaces/http/rest/handlers"
	"nasab-backend/interfaces/http/rest/middleware"
)

// Router creates and configures the HTTP router
type Router struct {
	familyService     *services.FamilyService
	hierarchyService  *services.HierarchyService
	extractionService *services.ExtractionService
	logger            *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	familyService *services.FamilyService,
	hierarchyService *services.HierarchyService,
	extractionService *services.ExtractionService,
	logger *zap.Logger,
) *Router {
	return &Router{
		familyService:     familyService,
		hierarchyService:  hierarchyService,
		extractionService: extractionService,
		logger:            logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://*.nasab.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		familyHandler := handlers.NewFamilyHandler(rt.familyService, rt.hierarchyService, rt.logger)
		r.Get("/families", familyHandler.ListFamilies)
		r.Route("/families/{familyID}", func(r chi.Router) {
			r.Get("/", familyHandler.GetFamily)
			r.Get("/hierarchy", familyHandler.GetHierarchy)
			r.Get("/stats", familyHandler.GetStats)
		})

		personHandler := handlers.NewPersonHandler(rt.familyService, rt.logger)
		r.Route("/people", func(r chi.Router) {
			r.Post("/", personHandler.CreatePerson)
			r.Post("/batch", personHandler.BatchImport)
			r.Get("/{personID}", personHandler.GetPerson)
			r.Put("/{personID}", personHandler.UpdatePerson)
			r.Delete("/{personID}", personHandler.DeletePerson)
		})

		extractionHandler := handlers.NewExtractionHandler(rt.extractionService, rt.familyService, rt.logger)
		r.Post("/extract", extractionHandler.Extract)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports ready only while the relationship symmetry audit
// passes.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := rt.familyService.CheckConsistency(); err != nil {
		rt.logger.Error("readiness check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"degraded","reason":"graph consistency check failed"}`))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
