package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/config"
	_ "github.com/esconsultorescorp1998-eng/mi-bitacora/docs"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/http/server"
	wshandler "github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/http/ws"
	pgstore "github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/postgres"
	brokers "github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/rabbit"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/store"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/service/auth"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/service/report"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/service/session"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/service/settings"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/service/trip"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/postgres"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/rabbit"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/trm"
	ws "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/wsHub"
)

const staleCheckInterval = time.Minute

type App struct {
	postgresDB *postgres.PostgreDB
	rabbitMQ   *rabbit.RabbitMQ
	httpServer *server.API
	connHub    *ws.ConnectionHub

	consumer *brokers.ReportConsumer
	watcher  *session.StaleWatcher

	cfg config.Config
	log logger.Logger
}

func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	postgresDB, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		log.Error(ctx, "failed to setup database", err)
		return nil, err
	}

	txManager := trm.New(postgresDB.Pool)
	kv, err := pgstore.NewStore(ctx, postgresDB.Pool, txManager)
	if err != nil {
		log.Error(ctx, "failed to setup persistent store", err)
		postgresDB.Pool.Close()
		return nil, err
	}

	sessionRepo := store.NewSessionRepo(kv)
	tripRepo := store.NewTripRepo(kv)
	settingsRepo := store.NewSettingsRepo(kv)

	connHub := ws.NewConnHub(log)
	notices := wshandler.NewNoticeHub(connHub, log)

	// The broker is optional: without it the logbook still works, only the
	// end-of-day report pipeline is skipped.
	var (
		rabbitMQ  *rabbit.RabbitMQ
		publisher session.ClosePublisher
		consumer  *brokers.ReportConsumer
	)

	settingsService := settings.NewService(settingsRepo, log)

	rabbitMQ, err = rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log)
	if err != nil {
		log.Warn(ctx, "rabbitmq unavailable, running without end-of-day reports", "err", err.Error())
		rabbitMQ = nil
	} else {
		producer := brokers.NewWorkdayProducer(rabbitMQ, log)
		if err := producer.Setup(ctx); err != nil {
			log.Warn(ctx, "failed to declare exchange", "err", err.Error())
		}
		publisher = producer
	}

	sessionService := session.NewService(sessionRepo, publisher, log)
	tripService := trip.NewService(tripRepo, settingsService, sessionService, log)
	reportService := report.NewService(tripService, settingsService, log)
	authService := auth.NewService(cfg.Auth, log)

	if rabbitMQ != nil {
		consumer = brokers.NewReportConsumer(rabbitMQ, reportService, notices, cfg.Export.Dir, log)
	}

	watcher := session.NewStaleWatcher(sessionService, notices, log, staleCheckInterval)

	httpServer, err := server.New(cfg, authService, settingsService, sessionService, tripService, reportService, notices, log)
	if err != nil {
		log.Error(ctx, "failed to setup http server", err)
		postgresDB.Pool.Close()
		return nil, err
	}

	return &App{
		postgresDB: postgresDB,
		rabbitMQ:   rabbitMQ,
		httpServer: httpServer,
		connHub:    connHub,
		consumer:   consumer,
		watcher:    watcher,
		cfg:        cfg,
		log:        log,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.httpServer.Run(runCtx, errCh)

	if a.consumer != nil {
		go func() {
			if err := a.consumer.Consume(runCtx); err != nil {
				a.log.Error(runCtx, "report consumer stopped", err)
			}
		}()
	}

	go a.watcher.Run(runCtx)

	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "logbook service closed")
	}()

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "logbook service started")

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	if a.httpServer != nil {
		if err := a.httpServer.Stop(ctx); err != nil {
			a.log.Warn(ctx, "failed to gracefully close http server", "error", err.Error())
		}
	}

	if a.connHub != nil {
		a.connHub.Close()
	}

	if a.rabbitMQ != nil {
		closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.rabbitMQ.Close(closeCtx); err != nil {
			a.log.Warn(ctx, "failed to gracefully close rabbitmq", "error", err.Error())
		}
	}

	if a.postgresDB != nil && a.postgresDB.Pool != nil {
		a.postgresDB.Pool.Close()
	}
}
