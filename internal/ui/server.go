// Package ui provides the CookBook web server.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/cookbook/internal/routes"
	"github.com/leapstack-labs/cookbook/internal/ui/notifier"
	"github.com/leapstack-labs/cookbook/internal/ui/pages"
	"github.com/leapstack-labs/cookbook/internal/ui/resources"
	"github.com/leapstack-labs/cookbook/internal/ui/router"
	"github.com/leapstack-labs/cookbook/internal/ui/shell"
)

// DefaultShutdownTimeout bounds graceful shutdown when Config leaves it unset.
const DefaultShutdownTimeout = 5 * time.Second

// watchDebounce coalesces bursts of file events into one reload.
const watchDebounce = 100 * time.Millisecond

// Server is the main UI server.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	table    *routes.Table
	assets   *resources.Assets
	renderer *pages.Renderer
	notifier *notifier.Notifier
}

// Config holds configuration for the UI server.
type Config struct {
	Host string
	Port int

	// Watch reloads connected browsers when files under StaticDir change.
	// Only effective with Dev.
	Watch bool

	// Dev enables the live-reload endpoints.
	Dev bool

	// Minify minifies embedded assets at startup.
	Minify bool

	// StaticDir serves assets from disk instead of the embedded copy.
	StaticDir string

	ShutdownTimeout time.Duration

	// Title is the application title appended to page titles.
	Title string

	Logger *slog.Logger

	// OnListen is called with the base URL once the listener is bound.
	OnListen func(url string)
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	table, err := router.DeclareRoutes()
	if err != nil {
		return nil, fmt.Errorf("failed to declare routes: %w", err)
	}

	assets, err := resources.New(resources.Options{
		Dir:    cfg.StaticDir,
		Minify: cfg.Minify,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}

	return &Server{
		cfg:    cfg,
		logger: logger,
		table:  table,
		assets: assets,
		renderer: &pages.Renderer{
			Table: table,
			Document: shell.DocumentOptions{
				AppTitle:   cfg.Title,
				Dev:        cfg.Dev,
				Stylesheet: assets.Path(resources.Stylesheet),
				Script:     assets.Path(resources.Script),
			},
		},
		notifier: notifier.New(),
	}, nil
}

// Handler returns the HTTP handler serving the UI.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		RequestLogger(s.logger),
		middleware.Recoverer,
		middleware.GetHead,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, router.Deps{
		Renderer: s.renderer,
		Assets:   s.assets,
		Notifier: s.notifier,
		Logger:   s.logger,
		Dev:      s.cfg.Dev,
	}); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	url := "http://" + displayAddr(ln.Addr())
	s.logger.Info("starting UI server", "addr", url, "dev", s.cfg.Dev)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.Dev && s.cfg.Watch {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if s.cfg.OnListen != nil {
		s.cfg.OnListen(url)
	}

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Renderer returns the page renderer backing the server.
func (s *Server) Renderer() *pages.Renderer {
	return s.renderer
}

// Assets returns the static asset set.
func (s *Server) Assets() *resources.Assets {
	return s.assets
}

// Notifier returns the server's dev-reload notifier.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchFiles reloads connected browsers when a file in the static directory
// changes.
func (s *Server) watchFiles(ctx context.Context) error {
	dir := s.assets.Dir()
	if dir == "" {
		s.logger.Debug("assets are embedded, nothing to watch")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, dir); err != nil {
		s.logger.Error("failed to watch static directory", "dir", dir, "error", err)
		return nil
	}
	s.logger.Debug("watching static directory", "dir", dir)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				s.logger.Debug("static file changed, reloading clients", "file", name)
				s.notifier.Broadcast()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// displayAddr renders a bound address for humans, mapping unspecified hosts
// to localhost.
func displayAddr(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return addr.String()
	}
	host := tcp.IP.String()
	if tcp.IP == nil || tcp.IP.IsUnspecified() {
		host = "localhost"
	}
	return net.JoinHostPort(host, strconv.Itoa(tcp.Port))
}
