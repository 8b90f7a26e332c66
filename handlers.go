package main

import (
	"errors"
	"net/http"

	"aniverse/catalog"
	"aniverse/logger"
	"aniverse/models"
	"aniverse/source"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

// errorResponse is the body of every failed API call.
type errorResponse struct {
	Error string `json:"error"`
}

// descriptor is served at the root path.
type descriptor struct {
	Message   string            `json:"message"`
	Status    string            `json:"status"`
	Database  string            `json:"database"`
	Endpoints map[string]string `json:"endpoints"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		l := logger.New("http")
		l.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// failLookup maps a catalog error to a response. Causes are logged, never
// sent to the client.
func (app *App) failLookup(w http.ResponseWriter, r *http.Request, err error, notFound, failed string) {
	switch {
	case errors.Is(err, catalog.ErrInvalidFormat):
		writeError(w, http.StatusBadRequest, "Invalid episode format. Use season-episode (e.g., 1-5)")
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	default:
		app.fail(w, r, err, failed)
	}
}

// fail answers 500 with a fixed message. A store failure also schedules an
// immediate store check so /health reflects it before the next tick.
func (app *App) fail(w http.ResponseWriter, r *http.Request, err error, message string) {
	app.log.Error().Err(err).Str("path", r.URL.Path).Str("request_id", requestIDFrom(r.Context())).Msg(message)
	if app.jobManager != nil && errors.Is(err, source.ErrUnavailable) {
		app.jobManager.TriggerStoreProbe()
	}
	writeError(w, http.StatusInternalServerError, message)
}

func (app *App) rootHandler(w http.ResponseWriter, _ *http.Request) {
	database := "Static document"
	if app.catalog.Backend() == models.BackendRelational {
		database = "Relational store"
	}

	writeJSON(w, http.StatusOK, descriptor{
		Message:  "AniVerse API Server",
		Status:   "running",
		Database: database,
		Endpoints: map[string]string{
			"library":        "/api/library",
			"series":         "/api/series/:slug",
			"movies":         "/api/movies/:slug",
			"episode":        "/api/series/:slug/episode/:season-:episode",
			"suggestions":    "/api/series/:slug/suggestions",
			"latestEpisodes": "/api/latest-episodes",
		},
	})
}

func (app *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	status, body := http.StatusOK, "OK"
	if app.jobManager != nil && !app.jobManager.StoreHealthy() {
		status, body = http.StatusServiceUnavailable, "Store unavailable"
	}

	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		app.log.Error().Err(err).Msg("Failed to write response")
	}
}

func (app *App) getLibraryHandler(w http.ResponseWriter, r *http.Request) {
	library, err := app.catalog.Library(r.Context())
	if err != nil {
		app.fail(w, r, err, "Failed to fetch library")
		return
	}

	writeJSON(w, http.StatusOK, library)
}

func (app *App) getSeriesHandler(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	detail, err := app.catalog.SeriesDetail(r.Context(), slug)
	if err != nil {
		app.failLookup(w, r, err, "Series not found", "Failed to fetch series")
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (app *App) getEpisodeHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	episode, err := app.catalog.ResolveEpisode(r.Context(), vars["slug"], vars["address"])
	if err != nil {
		app.failLookup(w, r, err, "Episode not found", "Failed to fetch episode")
		return
	}

	writeJSON(w, http.StatusOK, episode)
}

func (app *App) getSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	library, err := app.catalog.Library(r.Context())
	if err != nil {
		app.fail(w, r, err, "Failed to fetch suggestions")
		return
	}

	var current *models.LibraryEntry
	for i := range library {
		if library[i].Slug == slug && library[i].Type == models.EntryTypeSeries {
			current = &library[i]
			break
		}
	}
	if current == nil {
		writeError(w, http.StatusNotFound, "Series not found")
		return
	}

	writeJSON(w, http.StatusOK, app.sampler.Sample(slug, current.Genres, library))
}

func (app *App) getMovieHandler(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	movie, err := app.catalog.MovieDetail(r.Context(), slug)
	if err != nil {
		app.failLookup(w, r, err, "Movie not found", "Failed to fetch movie")
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

func (app *App) getLatestEpisodesHandler(w http.ResponseWriter, r *http.Request) {
	feed, err := app.catalog.LatestEpisodes(r.Context())
	if err != nil {
		app.fail(w, r, err, "Failed to fetch latest episodes")
		return
	}

	writeJSON(w, http.StatusOK, feed)
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Endpoint not found")
}
