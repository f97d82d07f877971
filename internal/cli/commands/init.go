package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/cookbook/internal/cli/config"
	"github.com/leapstack-labs/cookbook/internal/cli/output"
)

// ConfigFileName is the file written by init.
const ConfigFileName = "cookbook.yaml"

const configHeader = `CookBook configuration.
Environment variables override these values: COOKBOOK_UI__PORT=3000.
Command-line flags override both.`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a cookbook.yaml with the default settings",
		Long: `Write a cookbook.yaml holding every setting at its default value.

The file is found by every command run in the directory or below it.`,
		Example: `  # Initialize in current directory
  cookbook init

  # Initialize in a new directory
  cookbook init my-site

  # Force overwrite existing config
  cookbook init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", ConfigFileName)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	data, err := DefaultConfigYAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.StatusLine(configPath, "success", "")
	r.Println("")
	r.Success("CookBook project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Run 'cookbook routes' to see the declared routes")
	r.Println("  2. Run 'cookbook serve' to open the UI")
	r.Println("  3. Run 'cookbook export' to build a static site")

	return nil
}

// DefaultConfigYAML returns the default configuration as a commented YAML
// document.
func DefaultConfigYAML() ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(config.Default().Map()); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	doc.HeadComment = configHeader

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
