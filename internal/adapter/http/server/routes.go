package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	// System Health
	a.mux.HandleFunc("/health", a.routes.health.HealthCheck)

	a.setupSwaggerRoutes()
	a.setupMetricsRoute()

	// Auth
	a.mux.HandleFunc("POST /auth/login", a.routes.auth.Login)

	// Settings
	a.mux.Handle("GET /settings", a.m.RequireAuth(a.routes.settings.Get))
	a.mux.Handle("PUT /settings", a.m.RequireAuth(a.routes.settings.Update))
	a.mux.Handle("POST /admin/reset", a.m.RequireAuth(a.routes.settings.Reset))

	// Workday session
	a.mux.Handle("GET /workday", a.m.RequireAuth(a.routes.session.Current))
	a.mux.Handle("POST /workday/open", a.m.RequireAuth(a.routes.session.Open))
	a.mux.Handle("POST /workday/close", a.m.RequireAuth(a.routes.session.Close))
	a.mux.Handle("POST /workday/reopen", a.m.RequireAuth(a.routes.session.Reopen))

	// Trips
	a.mux.Handle("GET /trips", a.m.RequireAuth(a.routes.trip.List))
	a.mux.Handle("GET /trips/active", a.m.RequireAuth(a.routes.trip.Active))
	a.mux.Handle("GET /trips/suggested-odometer", a.m.RequireAuth(a.routes.trip.Suggested))
	a.mux.Handle("POST /trips", a.m.RequireAuth(a.routes.trip.Start))
	a.mux.Handle("POST /trips/finish", a.m.RequireAuth(a.routes.trip.Finish))
	a.mux.Handle("POST /trips/cancel", a.m.RequireAuth(a.routes.trip.Cancel))
	a.mux.Handle("POST /trips/recover", a.m.RequireAuth(a.routes.trip.Recover))
	a.mux.Handle("DELETE /trips/{trip_id}", a.m.RequireAuth(a.routes.trip.Delete))

	// Reports
	a.mux.Handle("GET /reports/export", a.m.RequireAuth(a.routes.report.Export))

	// Notices stream
	a.mux.Handle("GET /ws/notices", a.m.RequireAuth(a.routes.notices.HandleWS))
}

// setupSwaggerRoutes configures the Swagger UI endpoint
func (a *API) setupSwaggerRoutes() {
	swaggerURL := httpSwagger.InstanceName("logbook")
	a.mux.HandleFunc("/swagger/", httpSwagger.Handler(swaggerURL))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func (a *API) setupMetricsRoute() {
	a.mux.Handle("/metrics", promhttp.Handler())
}
