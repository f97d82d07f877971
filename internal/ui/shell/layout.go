package shell

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/cookbook/internal/ui/features/common"
)

// Element IDs patched during in-shell navigation.
const (
	SidebarID = "sidebar"
	MainID    = "main"
)

// navigatingSignal is true while a navigation request is in flight.
const navigatingSignal = "navigating"

// Layout is the view of the root route: the sidebar followed by the main
// region, which renders the outlet passed as templ children.
func Layout() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		outlet := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)

		loc := LocationFrom(ctx)
		h := common.NewHTML(w)
		h.Component(ctx, Sidebar(Nav(loc.Path)))
		h.Component(ctx, Main(outlet))
		return h.Err()
	})
}

// Sidebar renders the navigation list.
func Sidebar(items []NavItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		static := LocationFrom(ctx).Static
		h := common.NewHTML(w)
		h.Raw("<div")
		h.Attr("id", SidebarID)
		h.Raw("><nav><ul>")
		for _, item := range items {
			h.Raw("<li><a")
			h.Attr("href", item.Href)
			if item.Active {
				h.Attr("class", "active")
				h.Attr("aria-current", "page")
			}
			if !static {
				h.Attr("data-on:click__prevent", "@get('"+item.NavURL()+"')")
				h.Flag("data-indicator:" + navigatingSignal)
			}
			h.Raw(">")
			h.Text(item.Label)
			h.Raw("</a></li>")
		}
		h.Raw("</ul></nav></div>")
		return h.Err()
	})
}

// Main renders the content region around outlet. While a navigation is in
// flight the region carries the "transitioning" class.
func Main(outlet templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := common.NewHTML(w)
		h.Raw("<div")
		h.Attr("id", MainID)
		h.Attr("data-class:transitioning", "$"+navigatingSignal)
		h.Raw(">")
		h.Component(ctx, outlet)
		h.Raw("</div>")
		return h.Err()
	})
}
