package common

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PageSection renders the standard content section of a leaf view: a
// heading followed by a lead paragraph.
func PageSection(id, title, lead string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := NewHTML(w)
		h.Raw("<section")
		h.Attr("class", "ui-content")
		h.Attr("data-view", id)
		h.Raw("><h1>")
		h.Text(title)
		h.Raw("</h1>")
		if lead != "" {
			h.Raw(`<p class="lead">`)
			h.Text(lead)
			h.Raw("</p>")
		}
		h.Raw("</section>")
		return h.Err()
	})
}
