package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/cookbook/internal/cli/output"
	"github.com/leapstack-labs/cookbook/internal/routes"
	"github.com/leapstack-labs/cookbook/internal/ui/shell"
)

// Resolution is the JSON shape of the resolve command.
type Resolution struct {
	Path     string   `json:"path"`
	Pattern  string   `json:"pattern,omitempty"`
	Title    string   `json:"title"`
	Views    []string `json:"views"`
	Active   string   `json:"active,omitempty"`
	NotFound bool     `json:"not_found,omitempty"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>",
		Short: "Show how a path resolves",
		Long: `Resolve a path against the route table and show the matched pattern, the
chain of views rendered for it and the active sidebar link.

Paths are canonicalized first, so "/explore/" and "explore" resolve like
"/explore". A path matching no route exits with an error after printing the
not-found resolution.`,
		Example: `  cookbook resolve /explore
  cookbook resolve /notifications -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			server, err := cc.Server()
			if err != nil {
				return err
			}
			table := server.Renderer().Table

			res, resolveErr := table.Resolve(args[0])
			switch {
			case errors.Is(resolveErr, routes.ErrNotFound):
				res = table.Fallback(res.Path)
			case resolveErr != nil:
				return resolveErr
			}

			if err := renderResolution(cc.Renderer, newResolution(res)); err != nil {
				return err
			}
			return resolveErr
		},
	}
}

func newResolution(res routes.Resolved) Resolution {
	out := Resolution{
		Path:     res.Path,
		Title:    res.Title(),
		Views:    res.Names(),
		NotFound: res.NotFound,
	}
	if !res.NotFound {
		out.Pattern = res.Pattern
	}
	for _, item := range shell.Nav(res.Path) {
		if item.Active {
			out.Active = item.Label
		}
	}
	return out
}

func renderResolution(r *output.Renderer, res Resolution) error {
	pattern := res.Pattern
	if res.NotFound {
		pattern = "(not found)"
	}
	active := res.Active
	if active == "" {
		active = "(none)"
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(res)
	case output.ModeMarkdown:
		r.Header(1, res.Path)
		r.Println(output.FormatKeyValue("Pattern", pattern))
		r.Println(output.FormatKeyValue("Title", res.Title))
		r.Println(output.FormatKeyValue("Views", strings.Join(res.Views, " > ")))
		r.Println(output.FormatKeyValue("Active link", active))
	default:
		s := r.Styles()
		r.Println(s.Path.Render(res.Path))
		r.Printf("  %s %s\n", s.Muted.Render("pattern"), pattern)
		r.Printf("  %s %s\n", s.Muted.Render("title  "), res.Title)
		r.Printf("  %s %s\n", s.Muted.Render("views  "), strings.Join(res.Views, " > "))
		r.Printf("  %s %s\n", s.Muted.Render("active "), s.Active.Render(active))
	}
	return nil
}
