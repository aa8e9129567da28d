package routes

import (
	"net/http"

	"github.com/zatekoja/smart-health-assistant/internal/api/handlers"
	"github.com/zatekoja/smart-health-assistant/internal/api/middleware"
	"github.com/zatekoja/smart-health-assistant/internal/application/services"
	"github.com/zatekoja/smart-health-assistant/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	triageHandler *handlers.TriageHandler
	authHandler   *handlers.AuthHandler
	healthHandler *handlers.HealthHandler
	debugHandler  *handlers.DebugHandler

	authService *services.AuthService
	metrics     *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	triageHandler *handlers.TriageHandler,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	debugHandler *handlers.DebugHandler,
	authService *services.AuthService,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		triageHandler: triageHandler,
		authHandler:   authHandler,
		healthHandler: healthHandler,
		debugHandler:  debugHandler,

		authService: authService,
		metrics:     metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	requireAuth := middleware.AuthMiddleware(r.authService)

	// Health check endpoint
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/signup", r.authHandler.Signup)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)

	// Triage endpoints
	r.mux.Handle("POST /api/hospitals/nearby",
		requireAuth(http.HandlerFunc(r.triageHandler.NearbyHospitals)))
	r.mux.Handle("POST /api/mental-health/analyze",
		requireAuth(http.HandlerFunc(r.triageHandler.MentalHealth)))

	// Debug endpoint (gated by configuration)
	r.mux.Handle("POST /api/debug/ai",
		requireAuth(http.HandlerFunc(r.debugHandler.GenerateRaw)))

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
