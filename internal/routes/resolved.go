package routes

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Resolved is the chain of routes matched for one navigation.
type Resolved struct {
	// Path is the canonical request path.
	Path string

	// Pattern is the matched table pattern; empty when NotFound.
	Pattern string

	// Chain holds the matched nodes, root first.
	Chain []*Node

	// NotFound marks the fallback resolution.
	NotFound bool

	fallback templ.Component
}

// Leaf returns the deepest matched node, or nil for an empty resolution.
// For the fallback resolution this is the root.
func (r Resolved) Leaf() *Node {
	if len(r.Chain) == 0 {
		return nil
	}
	return r.Chain[len(r.Chain)-1]
}

// Title returns the name of the rendered leaf view.
func (r Resolved) Title() string {
	if r.NotFound {
		return NotFoundName
	}
	if leaf := r.Leaf(); leaf != nil {
		return leaf.Name
	}
	return ""
}

// Names returns the view names along the chain, root first. The fallback
// resolution ends with NotFoundName.
func (r Resolved) Names() []string {
	names := Entry{Chain: r.Chain}.Names()
	if r.NotFound {
		names = append(names, NotFoundName)
	}
	return names
}

// Component renders the whole chain: every view is rendered with the
// composition of the views below it as its children.
func (r Resolved) Component() templ.Component {
	return compose(r.views())
}

// Outlet renders the chain below the root, which is what the root view
// receives as children.
func (r Resolved) Outlet() templ.Component {
	views := r.views()
	if len(views) <= 1 {
		return templ.NopComponent
	}
	return compose(views[1:])
}

func (r Resolved) views() []templ.Component {
	views := make([]templ.Component, 0, len(r.Chain)+1)
	for _, n := range r.Chain {
		views = append(views, n.View)
	}
	if r.NotFound && r.fallback != nil {
		views = append(views, r.fallback)
	}
	return views
}

func compose(views []templ.Component) templ.Component {
	switch len(views) {
	case 0:
		return templ.NopComponent
	case 1:
		return views[0]
	}
	outer, inner := views[0], compose(views[1:])
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return outer.Render(templ.WithChildren(ctx, inner), w)
	})
}
