package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/scriptkit/internal/config"
	"github.com/Aman-CERP/scriptkit/internal/errors"
	"github.com/Aman-CERP/scriptkit/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage scriptkit configuration",
		Long: `Manage the configuration files scriptkit reads.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/scriptkit/config.yaml)
  3. Project config (.scriptkit.yaml)
  4. Environment variables (SCRIPTKIT_*)
  5. Command-line flags`,
		Example: `  # Write a project config with all defaults
  scriptkit config init --project

  # Show effective configuration
  scriptkit config show

  # Print user config file path
  scriptkit config path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force, project bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a configuration file with default values",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runConfigInit(cmd, force, project)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "Write "+config.ProjectFileName+" in the current directory instead of the user config")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "show",
		Short:       "Show effective configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runConfigShow(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print user config file path",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath())
			return err
		},
	}
}

func runConfigInit(cmd *cobra.Command, force, project bool) error {
	out := output.New(cmd.OutOrStdout())

	path := config.GetUserConfigPath()
	if project {
		cwd, err := os.Getwd()
		if err != nil {
			return errors.InternalError("cannot determine working directory", err)
		}
		path = filepath.Join(cwd, config.ProjectFileName)
	}

	if _, err := os.Stat(path); err == nil && !force {
		out.Warning("Configuration already exists")
		out.Status("", "Location: "+path)
		out.Status("", "Use --force to overwrite it with defaults")
		return nil
	}

	if err := config.NewConfig().WriteYAML(path); err != nil {
		return errors.IOError("failed to write configuration", err).WithDetail("path", path)
	}

	out.Success("Created configuration")
	out.Status("", "Location: "+path)
	return nil
}

func runConfigShow(cmd *cobra.Command, jsonOutput bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.InternalError("cannot determine working directory", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return errors.ConfigError("failed to load configuration", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
