// Package router sets up HTTP routes for the UI server.
package router

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/cookbook/internal/routes"
	"github.com/leapstack-labs/cookbook/internal/ui/notifier"
	"github.com/leapstack-labs/cookbook/internal/ui/pages"
	"github.com/leapstack-labs/cookbook/internal/ui/resources"
	"github.com/leapstack-labs/cookbook/internal/ui/shell"
)

// Dev-mode endpoints.
const (
	ReloadPath    = "/reload"
	HotReloadPath = "/hotreload"
)

// Deps are the shared services the routes are built from.
type Deps struct {
	Renderer *pages.Renderer
	Assets   *resources.Assets
	Notifier *notifier.Notifier
	Logger   *slog.Logger
	Dev      bool
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps) error {
	if deps.Renderer == nil || deps.Renderer.Table == nil {
		return errors.New("router: renderer with a route table is required")
	}
	if deps.Assets == nil {
		return errors.New("router: assets are required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	router.Use(Canonical)

	// Hot reload endpoint for dev mode
	if deps.Dev {
		if deps.Notifier == nil {
			return errors.New("router: dev mode requires a notifier")
		}
		setupReload(router, deps.Notifier)
	}

	// Static assets
	router.Handle(resources.URLPrefix+"*", deps.Assets.Handler())

	// In-shell navigation
	router.Get(shell.NavEndpoint, navHandler(deps))

	// Pages
	deps.Renderer.Table.Mount(router, pageHandler(deps))

	return nil
}

// Canonical redirects requests for non-canonical paths to their canonical
// form, keeping the query. Invalid paths are rejected with 400.
func Canonical(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.EscapedPath()
		if routes.IsCanonical(p) {
			next.ServeHTTP(w, r)
			return
		}

		canonical, err := routes.Canonicalize(p)
		if err != nil {
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		}
		if r.URL.RawQuery != "" {
			canonical += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, canonical, http.StatusMovedPermanently)
	})
}

func pageHandler(deps Deps) func(routes.Resolved) http.Handler {
	return func(res routes.Resolved) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var buf bytes.Buffer
			if err := deps.Renderer.RenderResolved(r.Context(), res, &buf); err != nil {
				deps.Logger.Error("render failed", "path", res.Path, "error", err)
				http.Error(w, "failed to render page", http.StatusInternalServerError)
				return
			}

			status := http.StatusOK
			if res.NotFound {
				status = http.StatusNotFound
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(status)
			_, _ = buf.WriteTo(w)
		})
	}
}

func setupReload(router chi.Router, notify *notifier.Notifier) {
	var hotReloadOnce sync.Once

	// Browsers reconnect after a restart; the first connection to a new
	// process reloads the page so it picks up new assets and templates.
	router.Get(ReloadPath, func(w http.ResponseWriter, r *http.Request) {
		updates := notify.Subscribe()
		defer notify.Unsubscribe(updates)

		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		for {
			select {
			case <-updates:
				reload()
			case <-r.Context().Done():
				return
			}
		}
	})

	router.Post(HotReloadPath, func(w http.ResponseWriter, _ *http.Request) {
		notify.Broadcast()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
