package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/cookbook/internal/cli/config"
	"github.com/leapstack-labs/cookbook/internal/ui"
)

// NewServeCommand creates the serve command. Its flags are read by the
// config loader, so they override the config file and environment.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the CookBook web UI",
		Long: `Start a local web server rendering the CookBook shell.

Every page is served inside the shell: the sidebar with the Home, Explore,
Notifications, Profile and CookBooks links, and the main region showing the
routed view. Sidebar clicks swap the main region in place without a full
page load.`,
		Example: `  # Start on the default port
  cookbook serve

  # Start on a custom port without opening a browser
  cookbook serve --port 3000 --no-browser

  # Serve assets from disk and reload browsers on change
  cookbook serve --dev --static-dir internal/ui/resources/static`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	f := cmd.Flags()
	f.Int("port", config.DefaultPort, "Port to serve on")
	f.String("host", config.DefaultHost, "Host to bind")
	f.Bool("no-browser", false, "Don't auto-open browser")
	f.Bool("watch", true, "Reload browsers when static files change (with --dev)")
	f.Bool("dev", false, "Enable live reload")
	f.Bool("minify", true, "Minify embedded assets")
	f.String("static-dir", "", "Serve assets from this directory instead of the embedded copy")
	f.String("title", config.DefaultTitle, "Application title")

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer
	uiCfg := cc.Cfg.UI

	serverCfg := serverConfig(cc.Cfg, cc.Logger)
	serverCfg.OnListen = func(url string) {
		r.Success("Serving " + uiCfg.Title + " on " + url)
		r.Muted("Press Ctrl+C to stop")
		if uiCfg.AutoOpen {
			go openBrowser(url)
		}
	}

	server, err := ui.NewServer(serverCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(context.Background(), "open", url)
	case "linux":
		cmd = exec.CommandContext(context.Background(), "xdg-open", url)
	case "windows":
		cmd = exec.CommandContext(context.Background(), "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}
