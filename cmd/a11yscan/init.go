package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/a11yscan.yaml
var starterConfig embed.FS

// configFileName is where init writes unless -o says otherwise.
const configFileName = ".a11yscan"

// NewInitCmd builds the init subcommand.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new a11yscan configuration file",
		Long: `Initialize writes a starter .a11yscan configuration file with the default
analysis service settings and commented examples for per-site overrides
(endpoint, API key, timeout, extra headers).

Examples:
  # Write .a11yscan into the current directory
  a11yscan init

  # Choose a different location
  a11yscan init -o myconfig.yaml

  # Replace a file that is already there
  a11yscan init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Path to write the configuration file")
	cmd.Flags().BoolP("force", "f", false,
		"Replace the configuration file if one already exists")

	return cmd
}

// runInitCmd writes the starter configuration file.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	outputPath, err := flags.GetString("output")
	if err != nil {
		return err
	}
	force, err := flags.GetBool("force")
	if err != nil {
		return err
	}

	// Refuse to clobber an existing file unless forced; a hand-edited
	// config is not recoverable.
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("%s already exists (pass -f to replace it)", outputPath)
		}
	}

	if err := writeConfigTemplate(outputPath); err != nil {
		return err
	}

	cmd.Printf("Created configuration file: %s\n", outputPath)
	cmd.Println("\nEdit the file to set per-site options:")
	cmd.Println("  - The analysis service endpoint and API key")
	cmd.Println("  - Request timeouts per site")
	cmd.Println("  - Custom headers sent to the analysis service")

	return nil
}

// writeConfigTemplate copies the embedded template to outputPath, creating
// parent directories as needed. The file is written 0600: users put API
// keys in it.
func writeConfigTemplate(outputPath string) error {
	content, err := starterConfig.ReadFile("templates/a11yscan.yaml")
	if err != nil {
		return fmt.Errorf("failed to load embedded template: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return nil
}
