// Package export pre-renders the route table into a static site that can be
// hosted without the server.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/leapstack-labs/cookbook/internal/routes"
	"github.com/leapstack-labs/cookbook/internal/ui/pages"
	"github.com/leapstack-labs/cookbook/internal/ui/resources"
)

// Well-known output files.
const (
	NotFoundFile = "404.html"
	ManifestFile = "manifest.json"
	StaticDir    = "static"
)

// notFoundPath is rendered for 404.html; it matches no nav link.
const notFoundPath = "/404"

// Page is one rendered document.
type Page struct {
	Path     string `json:"path"`
	Title    string `json:"title"`
	File     string `json:"file"`
	NotFound bool   `json:"not_found,omitempty"`
}

// Manifest lists everything an export wrote, relative to the output
// directory.
type Manifest struct {
	GeneratedAt time.Time `json:"generated_at"`
	Title       string    `json:"title"`
	Pages       []Page    `json:"pages"`
	Assets      []string  `json:"assets"`
}

// Files returns every written file, pages first.
func (m *Manifest) Files() []string {
	files := make([]string, 0, len(m.Pages)+len(m.Assets)+1)
	for _, p := range m.Pages {
		files = append(files, p.File)
	}
	files = append(files, m.Assets...)
	return append(files, ManifestFile)
}

// Options configures an export.
type Options struct {
	Renderer *pages.Renderer
	Assets   *resources.Assets
	OutDir   string
	Logger   *slog.Logger
}

// Build renders every declared route to <OutDir>/<path>/index.html, the
// not-found page to 404.html, copies the assets under static/ and writes
// manifest.json.
func Build(ctx context.Context, opts Options) (*Manifest, error) {
	if opts.Renderer == nil || opts.Renderer.Table == nil {
		return nil, errors.New("export: renderer with a route table is required")
	}
	if opts.Assets == nil {
		return nil, errors.New("export: assets are required")
	}
	if opts.OutDir == "" {
		return nil, errors.New("export: output directory is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	renderer := *opts.Renderer
	renderer.Static = true

	m := &Manifest{
		GeneratedAt: time.Now().UTC(),
		Title:       renderer.Document.AppTitle,
	}

	for _, e := range renderer.Table.Routes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := renderer.Resolve(e.Pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", e.Pattern, err)
		}
		page, err := writePage(ctx, &renderer, res, opts.OutDir, PageFile(res.Path))
		if err != nil {
			return nil, err
		}
		logger.Debug("exported page", "path", page.Path, "file", page.File)
		m.Pages = append(m.Pages, page)
	}

	page, err := writePage(ctx, &renderer, renderer.Table.Fallback(notFoundPath), opts.OutDir, NotFoundFile)
	if err != nil {
		return nil, err
	}
	m.Pages = append(m.Pages, page)

	names, err := opts.Assets.Names()
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	for _, name := range names {
		data, err := opts.Assets.ReadFile(name)
		if err != nil {
			return nil, err
		}
		rel := path.Join(StaticDir, name)
		if err := writeFile(opts.OutDir, rel, data); err != nil {
			return nil, err
		}
		m.Assets = append(m.Assets, rel)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := writeFile(opts.OutDir, ManifestFile, append(data, '\n')); err != nil {
		return nil, err
	}

	logger.Info("export complete", "dir", opts.OutDir, "pages", len(m.Pages), "assets", len(m.Assets))
	return m, nil
}

// PageFile maps a canonical route path to the file serving it on a static
// host.
func PageFile(routePath string) string {
	if routePath == "/" {
		return "index.html"
	}
	return path.Join(routePath[1:], "index.html")
}

func writePage(ctx context.Context, r *pages.Renderer, res routes.Resolved, outDir, rel string) (Page, error) {
	var buf bytes.Buffer
	if err := r.RenderResolved(ctx, res, &buf); err != nil {
		return Page{}, fmt.Errorf("render %s: %w", res.Path, err)
	}
	if err := writeFile(outDir, rel, buf.Bytes()); err != nil {
		return Page{}, err
	}
	return Page{
		Path:     res.Path,
		Title:    res.Title(),
		File:     rel,
		NotFound: res.NotFound,
	}, nil
}

func writeFile(outDir, rel string, data []byte) error {
	dst := filepath.Join(outDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}
