package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/cookbook/internal/cli/output"
	"github.com/leapstack-labs/cookbook/internal/export"
)

// DefaultExportDir is the export target when no directory is given.
const DefaultExportDir = "dist"

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Clean bool
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export [directory]",
		Short: "Export the UI as a static site",
		Long: `Render every declared route to <directory>/<path>/index.html, the not-found
page to 404.html and copy the assets under static/. A manifest.json lists
everything written.

Exported pages use plain links, so the site works on any static host.`,
		Example: `  # Export to ./dist
  cookbook export

  # Export to a fresh directory
  cookbook export public --clean`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := DefaultExportDir
			if len(args) > 0 {
				dir = args[0]
			}
			return runExport(cmd, dir, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Clean, "clean", false, "Remove the directory before exporting")

	return cmd
}

func runExport(cmd *cobra.Command, dir string, opts *ExportOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	if opts.Clean {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		if abs == filepath.Dir(abs) || abs == cc.Cfg.ProjectRoot {
			return fmt.Errorf("refusing to clean %s", abs)
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to clean %s: %w", dir, err)
		}
	}

	server, err := cc.Server()
	if err != nil {
		return err
	}

	m, err := export.Build(cmd.Context(), export.Options{
		Renderer: server.Renderer(),
		Assets:   server.Assets(),
		OutDir:   dir,
		Logger:   cc.Logger,
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(m)
	}

	for _, f := range m.Files() {
		r.StatusLine(filepath.ToSlash(filepath.Join(dir, f)), "success", "")
	}
	r.Println("")
	r.Success(fmt.Sprintf("Exported %d pages and %d assets to %s", len(m.Pages), len(m.Assets), dir))
	return nil
}
