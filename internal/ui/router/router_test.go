package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/cookbook/internal/routes"
	"github.com/leapstack-labs/cookbook/internal/testutil"
	"github.com/leapstack-labs/cookbook/internal/ui/notifier"
	"github.com/leapstack-labs/cookbook/internal/ui/pages"
	"github.com/leapstack-labs/cookbook/internal/ui/resources"
	"github.com/leapstack-labs/cookbook/internal/ui/shell"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func setupTestRouter(t *testing.T, dev bool) (http.Handler, Deps) {
	t.Helper()

	table, err := DeclareRoutes()
	require.NoError(t, err)
	assets, err := resources.New(resources.Options{})
	require.NoError(t, err)

	deps := Deps{
		Renderer: &pages.Renderer{
			Table: table,
			Document: shell.DocumentOptions{
				AppTitle:   "CookBook",
				Dev:        dev,
				Stylesheet: assets.Path(resources.Stylesheet),
			},
		},
		Assets:   assets,
		Notifier: notifier.New(),
		Logger:   testutil.NewTestLogger(t),
		Dev:      dev,
	}

	r := chi.NewMux()
	require.NoError(t, SetupRoutes(r, deps))
	return r, deps
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func navURL(path, history string) string {
	q := url.Values{"path": {path}}
	if history != "" {
		q.Set("history", history)
	}
	return shell.NavEndpoint + "?" + q.Encode()
}

// =============================================================================
// Route table
// =============================================================================

func TestDeclareRoutes(t *testing.T) {
	table, err := DeclareRoutes()
	require.NoError(t, err)

	var patterns []string
	for _, e := range table.Routes() {
		patterns = append(patterns, e.Pattern)
	}
	assert.Equal(t, []string{"/", "/explore", "/profile", "/cookbooks"}, patterns)

	tests := map[string]string{
		"/":          "Home",
		"/explore":   "Explore",
		"/profile":   "Profile",
		"/cookbooks": "Cookbooks",
	}
	for path, want := range tests {
		res, err := table.Resolve(path)
		require.NoError(t, err, path)
		assert.Equal(t, []string{ShellName, want}, res.Names(), path)
	}

	_, err = table.Resolve("/notifications")
	assert.ErrorIs(t, err, routes.ErrNotFound)
}

// =============================================================================
// Full page loads
// =============================================================================

func TestPages(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   []string
		wantActive string
	}{
		{
			name:       "home at root",
			path:       "/",
			wantStatus: http.StatusOK,
			wantBody:   []string{"<!doctype html>", "<title>Home - CookBook</title>", `data-view="home"`},
			wantActive: `<a href="/" class="active"`,
		},
		{
			name:       "cookbooks direct load",
			path:       "/cookbooks",
			wantStatus: http.StatusOK,
			wantBody:   []string{"<title>Cookbooks - CookBook</title>", `data-view="cookbooks"`, `id="sidebar"`},
			wantActive: `<a href="/cookbooks" class="active"`,
		},
		{
			name:       "notifications link has no route",
			path:       "/notifications",
			wantStatus: http.StatusNotFound,
			wantBody:   []string{"<title>Not Found - CookBook</title>", `data-view="not-found"`, `id="sidebar"`},
			wantActive: `<a href="/notifications" class="active"`,
		},
		{
			name:       "unknown path",
			path:       "/nonexistent",
			wantStatus: http.StatusNotFound,
			wantBody:   []string{`data-view="not-found"`},
		},
		{
			name:       "encoded slash is not a nested explore path",
			path:       "/explore%2F",
			wantStatus: http.StatusNotFound,
			wantBody:   []string{`data-view="not-found"`, `id="sidebar"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestRouter(t, false)
			rec := get(t, h, tt.path)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			body := rec.Body.String()
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want, "response should contain %q", want)
			}
			if tt.wantActive == "" {
				assert.NotContains(t, body, `class="active"`)
			} else {
				assert.Contains(t, body, tt.wantActive)
				assert.Equal(t, 1, strings.Count(body, `class="active"`))
			}
			assert.NotContains(t, body, ReloadPath)
		})
	}
}

func TestCanonicalRedirect(t *testing.T) {
	h, _ := setupTestRouter(t, false)

	tests := []struct {
		path     string
		location string
	}{
		{"/explore/", "/explore"},
		{"//profile", "/profile"},
		{"/explore/../cookbooks?x=1", "/cookbooks?x=1"},
		{"/%65xplore", "/explore"},
		{"/explore%2f", "/explore%2F"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			assert.Equal(t, http.StatusMovedPermanently, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}

	rec := get(t, h, "/explore%00")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatic(t *testing.T) {
	h, deps := setupTestRouter(t, false)

	rec := get(t, h, deps.Assets.Path(resources.Stylesheet))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "#sidebar")

	page := get(t, h, "/").Body.String()
	assert.Contains(t, page, deps.Assets.Path(resources.Stylesheet))
}

// =============================================================================
// In-shell navigation
// =============================================================================

func TestNav_PatchesShellRegions(t *testing.T) {
	h, _ := setupTestRouter(t, false)

	rec := get(t, h, navURL("/explore", ""))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")

	body := rec.Body.String()
	sidebar := strings.Index(body, `<div id="sidebar">`)
	main := strings.Index(body, `<div id="main"`)
	require.True(t, sidebar >= 0 && main > sidebar, body)

	assert.Contains(t, body, `<a href="/explore" class="active"`)
	assert.NotContains(t, body, `<a href="/" class="active"`)
	assert.Contains(t, body, `data-view="explore"`)
	assert.NotContains(t, body, "<!doctype html>")
	assert.Contains(t, body, "pushState")
	assert.Contains(t, body, `"/explore"`)
}

func TestNav_HistoryModes(t *testing.T) {
	h, _ := setupTestRouter(t, false)

	body := get(t, h, navURL("/profile", HistoryReplace)).Body.String()
	assert.Contains(t, body, "replaceState")
	assert.NotContains(t, body, "pushState")

	body = get(t, h, navURL("/profile", HistoryNone)).Body.String()
	assert.NotContains(t, body, "replaceState")
	assert.NotContains(t, body, "pushState")
	assert.Contains(t, body, `data-view="profile"`)
}

func TestNav_NotFound(t *testing.T) {
	h, _ := setupTestRouter(t, false)

	body := get(t, h, navURL("/notifications", "")).Body.String()
	assert.Contains(t, body, `data-view="not-found"`)
	assert.Contains(t, body, `<a href="/notifications" class="active"`)
	assert.Contains(t, body, `"/notifications"`)
}

func TestNav_Rejects(t *testing.T) {
	h, _ := setupTestRouter(t, false)

	for _, target := range []string{
		navURL("", ""),
		navURL("https://evil.example", ""),
		navURL("//evil.example", ""),
		navURL("explore", ""),
		navURL("/../etc", ""),
		navURL("/explore", "sideways"),
	} {
		t.Run(target, func(t *testing.T) {
			body := get(t, h, target).Body.String()
			assert.Contains(t, body, "console.error")
			assert.NotContains(t, body, `id="main"`)
		})
	}
}

func TestNavTarget(t *testing.T) {
	got, err := NavTarget("/explore?tab=new")
	require.NoError(t, err)
	assert.Equal(t, "/explore?tab=new", got)

	for _, raw := range []string{"", "explore", "//evil", `/\evil`, "javascript:alert(1)"} {
		_, err := NavTarget(raw)
		assert.ErrorIs(t, err, ErrInvalidNavTarget, raw)
	}
}

func TestHistoryScript(t *testing.T) {
	script, err := historyScript("", "/explore", "Explore - CookBook")
	require.NoError(t, err)
	assert.Equal(t, `document.title = "Explore - CookBook"; window.history.pushState(null, "", "/explore");`, script)

	script, err = historyScript(HistoryNone, "/explore", `A "quoted" title`)
	require.NoError(t, err)
	assert.Equal(t, `document.title = "A \"quoted\" title";`, script)

	_, err = historyScript("bogus", "/", "")
	require.Error(t, err)
}

// =============================================================================
// Dev reload
// =============================================================================

func TestReload_DevOnly(t *testing.T) {
	h, _ := setupTestRouter(t, false)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, HotReloadPath, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	h, _ = setupTestRouter(t, true)
	assert.Contains(t, get(t, h, "/").Body.String(), ReloadPath)
}

func TestReload_BroadcastReachesClient(t *testing.T) {
	h, deps := setupTestRouter(t, true)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, ReloadPath, nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(rec, req)
	}()

	// Wait for the stream to subscribe before broadcasting.
	require.Eventually(t, func() bool { return deps.Notifier.Len() == 1 }, time.Second, 5*time.Millisecond)

	post := httptest.NewRecorder()
	h.ServeHTTP(post, httptest.NewRequest(http.MethodPost, HotReloadPath, nil))
	assert.Equal(t, http.StatusOK, post.Code)

	// Let the stream handle the ping, then disconnect.
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, 0, deps.Notifier.Len())
	assert.GreaterOrEqual(t, strings.Count(rec.Body.String(), "window.location.reload()"), 2)
}

func TestSetupRoutes_RequiresDeps(t *testing.T) {
	err := SetupRoutes(chi.NewMux(), Deps{})
	require.Error(t, err)
}
