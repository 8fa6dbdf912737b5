package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/config"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/http/handler"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/http/middleware"
	wshandler "github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/http/ws"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
)

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	health   *handler.Health
	auth     *handler.Auth
	settings *handler.Settings
	session  *handler.Session
	trip     *handler.Trip
	report   *handler.Report
	notices  *wshandler.NoticeHub
}

func New(
	cfg config.Config,
	authService handler.AuthService,
	settingsService handler.SettingsService,
	sessionService handler.SessionService,
	tripService handler.TripService,
	reportService handler.ReportService,
	notices *wshandler.NoticeHub,
	log logger.Logger,
) (*API, error) {
	if authService == nil {
		return nil, errors.New("auth service is required")
	}

	routes := &handlers{
		health:   handler.NewHealth("bitacora", log),
		auth:     handler.NewAuth(authService, log),
		settings: handler.NewSettings(settingsService, log),
		session:  handler.NewSession(sessionService, tripService, log),
		trip:     handler.NewTrip(tripService, log),
		report:   handler.NewReport(reportService, log),
		notices:  notices,
	}

	mid := middleware.NewMiddleware(authService, log)

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      mid,
		addr:   cfg.Server.Addr(),
		cfg:    cfg,
		log:    log,
	}

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
	}

	api.setupRoutes()

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Metrics(a.m.Logging(a.mux))))
}
