package routes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// Entry is one resolvable pattern of the table.
type Entry struct {
	Pattern string
	Chain   []*Node
}

// Leaf returns the deepest node of the entry.
func (e Entry) Leaf() *Node {
	return e.Chain[len(e.Chain)-1]
}

// Names returns the view names along the chain, root first.
func (e Entry) Names() []string {
	names := make([]string, len(e.Chain))
	for i, n := range e.Chain {
		names[i] = n.Name
	}
	return names
}

// Option configures a Table.
type Option func(*Table)

// WithNotFound sets the view rendered in the root outlet when a path
// matches no route.
func WithNotFound(view templ.Component) Option {
	return func(t *Table) {
		t.notFound = view
	}
}

// Table is an immutable, validated route tree.
type Table struct {
	root      *Node
	mux       *chi.Mux
	entries   []Entry
	byPattern map[string]Entry
	notFound  templ.Component
}

// New validates the tree rooted at root and builds a table from it.
func New(root Node, opts ...Option) (*Table, error) {
	if root.Index {
		return nil, ErrIndexAtRoot
	}
	if p := strings.Trim(root.Path, "/"); p != "" {
		if err := validateSegment(p); err != nil {
			return nil, fmt.Errorf("%w (root route)", err)
		}
	}

	t := &Table{
		root:      root.clone(),
		mux:       chi.NewMux(),
		byPattern: make(map[string]Entry),
		notFound:  defaultNotFound,
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.flatten(t.root, "/", nil); err != nil {
		return nil, err
	}

	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for _, e := range t.entries {
		t.mux.Get(e.Pattern, noop)
	}

	return t, nil
}

// flatten walks the tree depth-first in declaration order and records one
// entry per resolvable pattern.
func (t *Table) flatten(n *Node, prefix string, parents []*Node) error {
	if n.View == nil {
		return fmt.Errorf("%w: %q", ErrMissingView, n.Name)
	}

	pattern := joinPattern(prefix, n.segments())
	chain := append(parents[:len(parents):len(parents)], n)

	if len(n.Children) == 0 {
		return t.add(pattern, chain)
	}

	hasIndex := false
	seen := make(map[string]bool)
	for i := range n.Children {
		child := &n.Children[i]
		if child.Index {
			if child.Path != "" || len(child.Children) > 0 {
				return fmt.Errorf("%w: %q under %q", ErrInvalidIndex, child.Name, pattern)
			}
			if hasIndex {
				return fmt.Errorf("%w under %q", ErrDuplicateIndex, pattern)
			}
			hasIndex = true
			continue
		}
		if err := validateSegment(child.Path); err != nil {
			return fmt.Errorf("%w (route %q under %q)", err, child.Name, pattern)
		}
		key := strings.Trim(child.Path, "/")
		if seen[key] {
			return fmt.Errorf("%w: %q under %q", ErrDuplicatePath, child.Path, pattern)
		}
		seen[key] = true
	}

	if !hasIndex {
		if err := t.add(pattern, chain); err != nil {
			return err
		}
	}

	for i := range n.Children {
		child := &n.Children[i]
		if child.Index {
			if child.View == nil {
				return fmt.Errorf("%w: %q", ErrMissingView, child.Name)
			}
			if err := t.add(pattern, append(chain[:len(chain):len(chain)], child)); err != nil {
				return err
			}
			continue
		}
		if err := t.flatten(child, pattern, chain); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) add(pattern string, chain []*Node) error {
	if _, ok := t.byPattern[pattern]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicatePath, pattern)
	}
	e := Entry{Pattern: pattern, Chain: chain}
	t.entries = append(t.entries, e)
	t.byPattern[pattern] = e
	return nil
}

func validateSegment(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path on non-index route", ErrInvalidSegment)
	}
	if strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: %q must be relative", ErrInvalidSegment, path)
	}
	for _, seg := range strings.Split(strings.TrimSuffix(path, "/"), "/") {
		switch {
		case seg == "", seg == ".", seg == "..":
			return fmt.Errorf("%w: %q", ErrInvalidSegment, path)
		case strings.ContainsAny(seg, "{}*?#%\\"):
			return fmt.Errorf("%w: %q", ErrInvalidSegment, path)
		}
	}
	return nil
}

// Resolve canonicalizes path and returns the chain of routes matching it.
// Paths matching nothing return an error wrapping ErrNotFound.
func (t *Table) Resolve(path string) (Resolved, error) {
	canonical, err := Canonicalize(path)
	if err != nil {
		return Resolved{}, err
	}

	pattern := t.mux.Find(chi.NewRouteContext(), http.MethodGet, canonical)
	entry, ok := t.byPattern[pattern]
	if pattern == "" || !ok {
		return Resolved{Path: canonical}, fmt.Errorf("%w: %s", ErrNotFound, canonical)
	}

	return Resolved{Path: canonical, Pattern: entry.Pattern, Chain: entry.Chain}, nil
}

// Fallback returns the not-found resolution for path: the root route with
// the not-found view in its outlet.
func (t *Table) Fallback(path string) Resolved {
	canonical, err := Canonicalize(path)
	if err != nil {
		canonical = path
	}
	return Resolved{
		Path:     canonical,
		Chain:    []*Node{t.root},
		NotFound: true,
		fallback: t.notFound,
	}
}

// Lookup returns the resolution for path, falling back to the not-found
// resolution when nothing matches. Invalid paths are still reported.
func (t *Table) Lookup(path string) (Resolved, error) {
	res, err := t.Resolve(path)
	if err == nil {
		return res, nil
	}
	if errors.Is(err, ErrNotFound) {
		return t.Fallback(res.Path), nil
	}
	return Resolved{}, err
}

// Routes returns the resolvable entries in declaration order.
func (t *Table) Routes() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Root returns the root node.
func (t *Table) Root() *Node {
	return t.root
}

// Mount registers a GET handler for every pattern on r, plus a NotFound
// handler serving the fallback resolution. The fallback is built from the
// escaped path, the same form chi matched against.
func (t *Table) Mount(r chi.Router, h func(Resolved) http.Handler) {
	for _, e := range t.entries {
		r.Method(http.MethodGet, e.Pattern, h(Resolved{Path: e.Pattern, Pattern: e.Pattern, Chain: e.Chain}))
	}
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		h(t.Fallback(req.URL.EscapedPath())).ServeHTTP(w, req)
	})
}

var defaultNotFound = templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, `<section class="not-found"><h1>Not Found</h1></section>`)
	return err
})
