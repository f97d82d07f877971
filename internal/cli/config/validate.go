package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Accepted values for enumerated settings.
var (
	OutputFormats = []string{"auto", "text", "markdown", "json"}
	LogLevels     = []string{"debug", "info", "warn", "error"}
	LogFormats    = []string{"text", "json"}
)

// Validate checks if the configuration is valid. All problems are reported
// together.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(OutputFormats, c.Output) {
		errs = append(errs, fmt.Errorf("output: %q is not one of %s", c.Output, strings.Join(OutputFormats, "|")))
	}
	if !slices.Contains(LogLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("log_level: %q is not one of %s", c.LogLevel, strings.Join(LogLevels, "|")))
	}
	if !slices.Contains(LogFormats, strings.ToLower(c.LogFormat)) {
		errs = append(errs, fmt.Errorf("log_format: %q is not one of %s", c.LogFormat, strings.Join(LogFormats, "|")))
	}
	if c.UI.Port < 1 || c.UI.Port > 65535 {
		errs = append(errs, fmt.Errorf("ui.port: %d is outside 1..65535", c.UI.Port))
	}
	if c.UI.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("ui.shutdown_timeout: must be positive, got %s", c.UI.ShutdownTimeout))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
