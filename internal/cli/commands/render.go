package commands

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/cookbook/internal/cli/output"
	"github.com/leapstack-labs/cookbook/internal/ui/pages"
)

// Render formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Format string
	Static bool
}

// RenderResult is the JSON shape of the render command.
type RenderResult struct {
	Path     string `json:"path"`
	Title    string `json:"title"`
	Format   string `json:"format"`
	NotFound bool   `json:"not_found,omitempty"`
	Body     string `json:"body"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Render the page for a path",
		Long: `Render the complete page served for a path, without starting a server.

With --format markdown only the main region is converted, which is handy
for checking which view a path lands on. Paths without a declared route
render the not-found page and print a warning.`,
		Example: `  # Print the Explore page
  cookbook render /explore

  # Print the main region of the Home page as Markdown
  cookbook render / --format markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", FormatHTML, "Page format (html|markdown)")
	cmd.Flags().BoolVar(&opts.Static, "static", false, "Render plain links as in a static export")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{FormatHTML, FormatMarkdown}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runRender(cmd *cobra.Command, path string, opts *RenderOptions) error {
	if opts.Format != FormatHTML && opts.Format != FormatMarkdown {
		return fmt.Errorf("unknown format %q: expected %s or %s", opts.Format, FormatHTML, FormatMarkdown)
	}

	cc := NewCommandContext(cmd)
	r := cc.Renderer
	server, err := cc.Server()
	if err != nil {
		return err
	}

	renderer := *server.Renderer()
	renderer.Static = opts.Static

	var buf bytes.Buffer
	res, err := renderer.Render(cmd.Context(), path, &buf)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}

	body := buf.String()
	if opts.Format == FormatMarkdown {
		if body, err = pages.Markdown(body); err != nil {
			return fmt.Errorf("failed to convert %s: %w", res.Path, err)
		}
	}

	if res.NotFound {
		r.Warning("no route matches " + res.Path + ", rendered the not-found page")
	}
	cc.Logger.Debug("rendered page", "path", res.Path, "pattern", res.Pattern, "bytes", buf.Len())

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(RenderResult{
			Path:     res.Path,
			Title:    res.Title(),
			Format:   opts.Format,
			NotFound: res.NotFound,
			Body:     body,
		})
	}
	r.Println(body)
	return nil
}
