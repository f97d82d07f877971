package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/cookbook/internal/routes"
	"github.com/leapstack-labs/cookbook/internal/ui/pages"
	"github.com/leapstack-labs/cookbook/internal/ui/shell"
)

// History modes accepted by the navigation endpoint.
const (
	HistoryPush    = "push"
	HistoryReplace = "replace"
	HistoryNone    = "none"
)

// ErrInvalidNavTarget is returned for navigation targets that are not
// site-relative paths.
var ErrInvalidNavTarget = errors.New("invalid navigation target")

// NavTarget validates a navigation target taken from a request. Only
// site-relative paths are accepted; absolute and protocol-relative URLs are
// rejected so the endpoint cannot be used to navigate off-site.
func NavTarget(raw string) (string, error) {
	switch {
	case raw == "":
		return "", fmt.Errorf("%w: empty path", ErrInvalidNavTarget)
	case !strings.HasPrefix(raw, "/"):
		return "", fmt.Errorf("%w: %q is not site-relative", ErrInvalidNavTarget, raw)
	case strings.HasPrefix(raw, "//"), strings.HasPrefix(raw, `/\`):
		return "", fmt.Errorf("%w: %q is protocol-relative", ErrInvalidNavTarget, raw)
	}
	return raw, nil
}

// historyScript returns the script that records path in the browser history
// and updates the document title.
func historyScript(mode, path, title string) (string, error) {
	var fn string
	switch mode {
	case "", HistoryPush:
		fn = "pushState"
	case HistoryReplace:
		fn = "replaceState"
	case HistoryNone:
		fn = ""
	default:
		return "", fmt.Errorf("unknown history mode %q", mode)
	}

	quotedTitle, err := json.Marshal(title)
	if err != nil {
		return "", err
	}
	script := "document.title = " + string(quotedTitle) + ";"
	if fn == "" {
		return script, nil
	}

	quotedPath, err := json.Marshal(path)
	if err != nil {
		return "", err
	}
	return script + " window.history." + fn + "(null, \"\", " + string(quotedPath) + ");", nil
}

// navHandler serves in-shell navigation over Datastar SSE: the sidebar and
// the main region are patched for the target path, then browser history is
// updated. The shell itself stays mounted.
func navHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		res, script, err := resolveNav(deps, q.Get("path"), q.Get("history"))
		if err != nil {
			deps.Logger.Debug("navigation rejected", "path", q.Get("path"), "error", err)
			sse := datastar.NewSSE(w, r)
			_ = sse.ConsoleError(err)
			return
		}

		ctx := shell.WithLocation(r.Context(), shell.NewLocation(res))
		sse := datastar.NewSSE(w, r.WithContext(ctx))

		if err := sse.PatchElementTempl(pages.Sidebar(res)); err != nil {
			_ = sse.ConsoleError(err)
			return
		}
		if err := sse.PatchElementTempl(pages.Outlet(res)); err != nil {
			_ = sse.ConsoleError(err)
			return
		}
		if err := sse.ExecuteScript(script); err != nil {
			_ = sse.ConsoleError(err)
		}
	}
}

func resolveNav(deps Deps, rawPath, history string) (routes.Resolved, string, error) {
	target, err := NavTarget(rawPath)
	if err != nil {
		return routes.Resolved{}, "", err
	}

	res, err := deps.Renderer.Resolve(target)
	if err != nil {
		return routes.Resolved{}, "", err
	}

	script, err := historyScript(history, res.Path, deps.Renderer.Document.PageTitle(res.Title()))
	if err != nil {
		return routes.Resolved{}, "", err
	}
	return res, script, nil
}
