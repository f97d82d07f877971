package shell

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/cookbook/internal/ui/features/common"
)

// DefaultDatastarSrc is the Datastar client bundle loaded by every page.
const DefaultDatastarSrc = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// DocumentOptions configures the HTML document around a page.
type DocumentOptions struct {
	// AppTitle is appended to every page title.
	AppTitle string

	// Dev adds the live-reload hook.
	Dev bool

	// Stylesheet is the URL of the app stylesheet; omitted when empty.
	Stylesheet string

	// Script is the URL of the app script; omitted when empty.
	Script string

	// DatastarSrc overrides DefaultDatastarSrc.
	DatastarSrc string

	// Static drops the in-shell navigation hooks.
	Static bool
}

// PageTitle joins a view title with the app title.
func (o DocumentOptions) PageTitle(title string) string {
	switch {
	case o.AppTitle == "":
		return title
	case title == "":
		return o.AppTitle
	default:
		return title + " - " + o.AppTitle
	}
}

// Document renders a complete HTML page with body inside it.
func Document(opts DocumentOptions, title string, body templ.Component) templ.Component {
	datastarSrc := opts.DatastarSrc
	if datastarSrc == "" {
		datastarSrc = DefaultDatastarSrc
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := common.NewHTML(w)
		h.Raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw("<title>")
		h.Text(opts.PageTitle(title))
		h.Raw("</title>")
		if opts.Stylesheet != "" {
			h.Raw(`<link rel="stylesheet"`)
			h.Attr("href", opts.Stylesheet)
			h.Raw(">")
		}
		h.Raw(`<script type="module"`)
		h.Attr("src", datastarSrc)
		h.Raw("></script>")
		if opts.Script != "" {
			h.Raw("<script defer")
			h.Attr("src", opts.Script)
			h.Raw("></script>")
		}
		h.Raw("</head>")

		// Back/forward: re-render for the restored URL without pushing a
		// new history entry.
		h.Raw("<body")
		h.Attr("data-signals:"+navigatingSignal, "false")
		if !opts.Static {
			h.Attr("data-on:popstate__window",
				"@get('"+NavEndpoint+"?history=none&path=' + encodeURIComponent(window.location.pathname))")
			h.Flag("data-indicator:" + navigatingSignal)
		}
		h.Raw(">")
		if opts.Dev {
			h.Raw(`<div hidden data-init="@get('/reload')"></div>`)
		}
		h.Raw(`<div id="app">`)
		h.Component(ctx, body)
		h.Raw("</div></body></html>")
		return h.Err()
	})
}
