package api

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erazemk/omara/internal/nav"
	"github.com/erazemk/omara/internal/view"
)

// Config holds the router's collaborators.
type Config struct {
	DB        *sql.DB
	JWTSecret string
	Catalogue *nav.Coordinator
	View      *view.Recorder
	// Gatherer serves /metrics when set.
	Gatherer prometheus.Gatherer
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(cfg Config) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: cfg.DB, JWTSecret: cfg.JWTSecret}
	catalogue := &CatalogueHandler{Catalogue: cfg.Catalogue, View: cfg.View}

	authMW := AuthMiddleware(cfg.JWTSecret, cfg.DB)
	protected := func(h http.HandlerFunc) http.Handler { return authMW(h) }

	// Public: login and metrics.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	if cfg.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	mux.Handle("POST /api/auth/logout", protected(authHandler.Logout))
	mux.Handle("PUT /api/auth/passcode", protected(authHandler.ChangePasscode))

	mux.Handle("GET /api/view", protected(catalogue.GetView))
	mux.Handle("GET /api/outfits", protected(catalogue.ListOutfits))
	mux.Handle("GET /api/outfits/{slot}/wears/{index}/photo", protected(catalogue.GetWearPhoto))

	// Navigation events.
	mux.Handle("POST /api/nav/create", protected(catalogue.StartCreate))
	mux.Handle("POST /api/nav/open/{slot}", protected(catalogue.Open))
	mux.Handle("POST /api/nav/wear/{index}", protected(catalogue.OpenWear))
	mux.Handle("POST /api/nav/edit", protected(catalogue.Edit))
	mux.Handle("POST /api/nav/delete", protected(catalogue.Delete))
	mux.Handle("POST /api/nav/back", protected(catalogue.Back))
	mux.Handle("POST /api/nav/cancel", protected(catalogue.Cancel))
	mux.Handle("POST /api/nav/submit", protected(catalogue.Submit))

	// Form editing.
	mux.Handle("GET /api/form", protected(catalogue.GetForm))
	mux.Handle("PUT /api/form", protected(catalogue.SetForm))
	mux.Handle("POST /api/form/wears", protected(catalogue.AddWear))
	mux.Handle("PUT /api/form/wears/{row}", protected(catalogue.SetWear))
	mux.Handle("DELETE /api/form/wears/{row}", protected(catalogue.RemoveWear))
	mux.Handle("PUT /api/form/wears/{row}/photo", protected(catalogue.UploadWearPhoto))
	mux.Handle("DELETE /api/form/wears/{row}/photo", protected(catalogue.RemoveWearPhoto))

	return mux
}
