// Package pages renders resolved routes as complete HTML documents or as the
// shell regions patched during in-shell navigation.
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/cookbook/internal/routes"
	"github.com/leapstack-labs/cookbook/internal/ui/shell"
)

// Renderer renders pages for a route table.
type Renderer struct {
	Table    *routes.Table
	Document shell.DocumentOptions

	// Static renders pages for hosting without the server: links are plain
	// anchors and the in-shell navigation hooks are left out.
	Static bool
}

// Resolve resolves path, substituting the not-found fallback for unknown
// paths. Invalid paths return an error wrapping routes.ErrInvalidPath.
func (r *Renderer) Resolve(path string) (routes.Resolved, error) {
	return r.Table.Lookup(path)
}

// Render resolves path and writes the full HTML document for it.
func (r *Renderer) Render(ctx context.Context, path string, w io.Writer) (routes.Resolved, error) {
	res, err := r.Resolve(path)
	if err != nil {
		return res, err
	}
	return res, r.RenderResolved(ctx, res, w)
}

// RenderResolved writes the full HTML document for res.
func (r *Renderer) RenderResolved(ctx context.Context, res routes.Resolved, w io.Writer) error {
	return r.Page(res).Render(r.withLocation(ctx, res), w)
}

// RenderOutlet writes the #main region for res.
func (r *Renderer) RenderOutlet(ctx context.Context, res routes.Resolved, w io.Writer) error {
	return Outlet(res).Render(r.withLocation(ctx, res), w)
}

// RenderSidebar writes the #sidebar region for res.
func (r *Renderer) RenderSidebar(ctx context.Context, res routes.Resolved, w io.Writer) error {
	return Sidebar(res).Render(r.withLocation(ctx, res), w)
}

// Page is the full document for res. It expects the Location for res in the
// render context.
func (r *Renderer) Page(res routes.Resolved) templ.Component {
	opts := r.Document
	opts.Static = r.static()
	return shell.Document(opts, res.Title(), res.Component())
}

// Outlet is the #main region for res.
func Outlet(res routes.Resolved) templ.Component {
	return shell.Main(res.Outlet())
}

// Sidebar is the #sidebar region with res marked active.
func Sidebar(res routes.Resolved) templ.Component {
	return shell.Sidebar(shell.Nav(res.Path))
}

func (r *Renderer) withLocation(ctx context.Context, res routes.Resolved) context.Context {
	loc := shell.NewLocation(res)
	loc.Static = r.static()
	return shell.WithLocation(ctx, loc)
}

// static reports whether either flag asks for static output. The document
// and the sidebar links always agree on it.
func (r *Renderer) static() bool {
	return r.Static || r.Document.Static
}
