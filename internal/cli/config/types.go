// Package config provides configuration management for the cookbook CLI.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Verbose   bool     `koanf:"verbose"`
	Output    string   `koanf:"output"`
	LogLevel  string   `koanf:"log_level"`
	LogFormat string   `koanf:"log_format"`
	UI        UIConfig `koanf:"ui"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when none was found. Relative paths resolve against it.
	ProjectRoot string `koanf:"-"`
}

// UIConfig holds configuration for the web server.
type UIConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	AutoOpen        bool          `koanf:"auto_open"`
	Watch           bool          `koanf:"watch"`
	Dev             bool          `koanf:"dev"`
	Minify          bool          `koanf:"minify"`
	StaticDir       string        `koanf:"static_dir"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Title           string        `koanf:"title"`
}

// Default configuration values.
const (
	DefaultOutput          = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultHost            = "localhost"
	DefaultPort            = 8765
	DefaultShutdownTimeout = 5 * time.Second
	DefaultTitle           = "CookBook"
)

// Config file names, in lookup order.
var configFileNames = []string{"cookbook.yaml", "cookbook.yml"}

// EnvPrefix prefixes environment overrides. Nested keys are joined with a
// double underscore: COOKBOOK_UI__PORT sets ui.port.
const EnvPrefix = "COOKBOOK_"

// Default returns a Config holding the default values.
func Default() *Config {
	return &Config{
		Output:    DefaultOutput,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		UI: UIConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			AutoOpen:        true,
			Watch:           true,
			Minify:          true,
			ShutdownTimeout: DefaultShutdownTimeout,
			Title:           DefaultTitle,
		},
	}
}

// Map returns the configuration as the nested key map used in config files.
// Durations are written in time.ParseDuration form.
func (c *Config) Map() map[string]any {
	return map[string]any{
		"verbose":    c.Verbose,
		"output":     c.Output,
		"log_level":  c.LogLevel,
		"log_format": c.LogFormat,
		"ui": map[string]any{
			"host":             c.UI.Host,
			"port":             c.UI.Port,
			"auto_open":        c.UI.AutoOpen,
			"watch":            c.UI.Watch,
			"dev":              c.UI.Dev,
			"minify":           c.UI.Minify,
			"static_dir":       c.UI.StaticDir,
			"shutdown_timeout": c.UI.ShutdownTimeout.String(),
			"title":            c.UI.Title,
		},
	}
}
