package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/makweb/addressapi/internal/config"
	"github.com/makweb/addressapi/internal/infrastructure/providers"
	"github.com/makweb/addressapi/internal/infrastructure/tracing"
	"github.com/makweb/addressapi/internal/present/rest"
	addressmw "github.com/makweb/addressapi/internal/present/rest/middleware"
	"github.com/makweb/addressapi/internal/usecase"
)

const serviceName = "addressapi"

// setupTracing is replaced in tests.
var setupTracing = tracing.Setup

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("addressapi stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup, including the trace
// flush, always happens.
func run(configPath string) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(conf.Server.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conf.Server.EnableTrace {
		shutdown, err := setupTracing(ctx, conf.Server.TraceEndpoint, serviceName)
		if err != nil {
			return errors.Wrap(err, "set up tracing")
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("failed to flush traces", slog.String("error", err.Error()))
			}
		}()
	}

	db, err := providers.NewDatabase(conf.Server)
	if err != nil {
		return errors.Wrap(err, "connect database")
	}

	err = providers.MigrateDatabase(db)
	if err != nil {
		return errors.Wrap(err, "migrate database")
	}

	rdb, err := providers.NewRedis(ctx, conf.Server)
	if err != nil {
		return errors.Wrap(err, "connect redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	signalService := providers.NewSignalService(rdb)
	addressRepo := providers.NewAddressRepository(db)
	geocoder := providers.NewGeocoder(conf.Geocoder)

	var publisher usecase.EventPublisher
	if signalService != nil {
		publisher = signalService
	}
	addressUsecase := usecase.NewAddressUsecase(addressRepo, geocoder, publisher)

	handler := rest.NewHandler(addressUsecase, signalService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware(serviceName))
	}
	e.Use(addressmw.AnnotateRequest)

	handler.RegisterRoutes(e)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", slog.String("listen", conf.Server.Listen))
		if err := e.Start(conf.Server.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", slog.String("error", err.Error()))
	}

	select {
	case err := <-serveErr:
		return errors.Wrap(err, "serve")
	default:
		return nil
	}
}
