// Package main provides the entry point of the AniVerse catalog API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aniverse/catalog"
	"aniverse/config"
	"aniverse/jobs"
	"aniverse/logger"
	"aniverse/recommend"
	"aniverse/source"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// App represents the application with its dependencies
type App struct {
	catalog    *catalog.Service
	sampler    *recommend.Sampler
	jobManager *jobs.JobManager
	log        zerolog.Logger
}

// NewApp wires the catalog service over an already selected source. The
// job manager is nil when there is no store to check.
func NewApp(p source.Provider, cfg *config.Config, jobManager *jobs.JobManager) *App {
	normalizer := catalog.NewNormalizer(catalog.NewClassifier(cfg.Static.SeriesIDs))
	return &App{
		catalog:    catalog.NewService(p, normalizer),
		sampler:    recommend.NewSampler(nil),
		jobManager: jobManager,
		log:        logger.New("http"),
	}
}

func main() {
	seed := flag.Bool("seed", false, "import the static document into the relational store and exit")
	flag.Parse()

	// Load environment variables from .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	l := logger.New("main")
	if envErr != nil {
		l.Warn().Err(envErr).Msg("Could not load .env file")
	}

	if err := run(cfg, *seed); err != nil {
		l.Fatal().Err(err).Msg("Server stopped")
	}
}

func run(cfg *config.Config, seed bool) error {
	l := logger.New("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := source.Select(ctx, cfg)
	if err != nil {
		return err
	}
	if closer, ok := provider.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				l.Error().Err(err).Msg("Failed to close store")
			}
		}()
	}

	if seed {
		return seedStore(ctx, provider, cfg)
	}

	var jobManager *jobs.JobManager
	if pinger, ok := provider.(jobs.Pinger); ok {
		probe := jobs.NewStoreProbe(pinger, 5*time.Second)
		jobManager = jobs.NewJobManager(probe, cfg.Store.ProbeInterval)
		jobManager.Start()
		defer jobManager.Stop()
	}

	app := NewApp(provider, cfg, jobManager)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      newRouter(app, cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info().Int("port", cfg.Port).Str("backend", string(provider.Backend())).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	l.Info().Msg("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newRouter builds the full HTTP handler: routes plus the middleware chain.
func newRouter(app *App, cfg *config.Config) http.Handler {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)

	r.HandleFunc("/", app.rootHandler).Methods("GET")
	r.HandleFunc("/health", app.healthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/library", app.getLibraryHandler).Methods("GET")
	api.HandleFunc("/series/{slug}", app.getSeriesHandler).Methods("GET")
	api.HandleFunc("/series/{slug}/episode/{address}", app.getEpisodeHandler).Methods("GET")
	api.HandleFunc("/series/{slug}/suggestions", app.getSuggestionsHandler).Methods("GET")
	api.HandleFunc("/movies/{slug}", app.getMovieHandler).Methods("GET")
	api.HandleFunc("/latest-episodes", app.getLatestEpisodesHandler).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(notFoundHandler)

	var h http.Handler = r
	h = rateLimitMiddleware(cfg.HTTP)(h)
	h = corsMiddleware(cfg.HTTP)(h)
	h = loggingMiddleware(h)
	h = requestIDMiddleware(h)
	return h
}
