package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tablebot/pkg/config"
	"tablebot/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type RouteRegistrar interface {
	RegisterRoutes(*httprouter.Router)
}

type Application struct {
	cfg    *config.Config
	server *http.Server
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetApp builds the server. Health routes get Recovery and Logging only,
// API routes additionally run under the request timeout.
func (a *Application) SetApp(health RouteRegistrar, api RouteRegistrar) {
	mux := http.NewServeMux()
	healthHandler := a.healthHandler(health)
	mux.Handle("/health", healthHandler)
	mux.Handle("/ready", healthHandler)
	mux.Handle("/", a.apiHandler(api))

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

// Handler exposes the configured mux, mainly for tests.
func (a *Application) Handler() http.Handler {
	if a.server == nil {
		return http.NotFoundHandler()
	}
	return a.server.Handler
}

func (a *Application) healthHandler(health RouteRegistrar) http.Handler {
	router := httprouter.New()
	health.RegisterRoutes(router)

	var h http.Handler = router
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	return h
}

func (a *Application) apiHandler(api RouteRegistrar) http.Handler {
	router := httprouter.New()
	api.RegisterRoutes(router)

	var h http.Handler = router
	h = middleware.RequestTimeout(a.cfg.RequestTimeout)(h)
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	return h
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			a.cfg.Log.Fatal("HTTP server failed", "error", err)
		}

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.cfg.Log.Info("Server stopped gracefully")
}
