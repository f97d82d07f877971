// Package resources provides static asset handling for the UI server.
package resources

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/google/uuid"
)

// URLPrefix is the URL path under which assets are served.
const URLPrefix = "/static/"

// Asset names referenced by the document.
const (
	Stylesheet = "app.css"
	Script     = "app.js"
)

//go:embed static
var staticFS embed.FS

// Options configures an asset set.
type Options struct {
	// Dir serves assets from disk instead of the embedded copy. Files are
	// read on every request and never cached by the browser.
	Dir string

	// Minify runs CSS and JS through esbuild once at startup. Ignored when
	// Dir is set.
	Minify bool

	Logger *slog.Logger
}

// Assets is the set of static files served by the UI.
type Assets struct {
	dir     string
	fsys    fs.FS
	files   map[string][]byte
	version string
	loaded  time.Time
}

// New loads the asset set described by opts.
func New(opts Options) (*Assets, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	a := &Assets{
		version: uuid.NewString(),
		loaded:  time.Now(),
	}

	if opts.Dir != "" {
		info, err := os.Stat(opts.Dir)
		if err != nil {
			return nil, fmt.Errorf("static dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("static dir %s: not a directory", opts.Dir)
		}
		a.dir = opts.Dir
		a.fsys = os.DirFS(opts.Dir)
		logger.Info("static assets served from filesystem", "path", opts.Dir)
		return a, nil
	}

	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	a.fsys = sub
	a.files = make(map[string][]byte)

	err = fs.WalkDir(sub, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(sub, name)
		if err != nil {
			return err
		}
		if opts.Minify {
			out, err := Minify(name, data)
			if err != nil {
				return err
			}
			logger.Debug("minified asset", "name", name, "before", len(data), "after", len(out))
			data = out
		}
		a.files[name] = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}
	return a, nil
}

// Version is the cache-busting token appended to asset URLs. It changes on
// every start.
func (a *Assets) Version() string {
	return a.version
}

// Path returns the versioned URL of an asset.
func (a *Assets) Path(name string) string {
	return URLPrefix + name + "?v=" + a.version
}

// Names lists the asset names in lexical order.
func (a *Assets) Names() ([]string, error) {
	if a.files != nil {
		names := make([]string, 0, len(a.files))
		for name := range a.files {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}

	var names []string
	err := fs.WalkDir(a.fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		names = append(names, name)
		return nil
	})
	return names, err
}

// ReadFile returns the served content of an asset.
func (a *Assets) ReadFile(name string) ([]byte, error) {
	if a.files != nil {
		data, ok := a.files[name]
		if !ok {
			return nil, fmt.Errorf("asset %s: %w", name, fs.ErrNotExist)
		}
		return data, nil
	}
	return fs.ReadFile(a.fsys, name)
}

// Dir returns the directory assets are served from, or "" when embedded.
func (a *Assets) Dir() string {
	return a.dir
}

// Handler returns an HTTP handler for serving static files under URLPrefix.
func (a *Assets) Handler() http.Handler {
	if a.files == nil {
		fileServer := http.StripPrefix(URLPrefix, http.FileServer(http.FS(a.fsys)))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-cache")
			fileServer.ServeHTTP(w, r)
		})
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, URLPrefix)
		data, ok := a.files[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		// Embedded assets never change for the life of the process.
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		http.ServeContent(w, r, name, a.loaded, bytes.NewReader(data))
	})
}

// Minify minifies CSS and JS sources with esbuild. Other files are returned
// unchanged.
func Minify(name string, src []byte) ([]byte, error) {
	var loader api.Loader
	switch path.Ext(name) {
	case ".css":
		loader = api.LoaderCSS
	case ".js":
		loader = api.LoaderJS
	default:
		return src, nil
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:            loader,
		Sourcefile:        name,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		LogLevel:          api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		var errMsg string
		for _, err := range result.Errors {
			line, column := 0, 0
			if err.Location != nil {
				line, column = err.Location.Line, err.Location.Column
			}
			errMsg += fmt.Sprintf("%s:%d:%d: %s\n", name, line, column, err.Text)
		}
		return nil, fmt.Errorf("esbuild errors:\n%s", errMsg)
	}
	return result.Code, nil
}
