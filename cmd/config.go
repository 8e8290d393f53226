package cmd

import (
	"fmt"
	"os"

	"github.com/samsaffron/mdreveal/internal/config"
	"github.com/spf13/cobra"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mdreveal configuration",
	Long: `View or create your mdreveal configuration.

Examples:
  mdreveal config                     # show effective config
  mdreveal config init                # write a default config file
  mdreveal config path                # print the config file path`,
	RunE: configShow, // Default to show
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration as YAML",
	RunE:  configShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE:  configInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	RunE:  configPath,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configShowCmd, configInitCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func configShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	path := configFile
	if path == "" {
		if path, err = config.GetConfigPath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		fmt.Fprintf(w, "# No config file (using defaults)\n")
		fmt.Fprintf(w, "# Create one with: mdreveal config init\n\n")
	} else {
		fmt.Fprintf(w, "# %s\n\n", path)
	}
	return writeYAML(w, cfg)
}

func configInit(cmd *cobra.Command, args []string) error {
	if configFile == "" {
		path, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		if config.Exists() && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.Save(config.Default()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config: %s\n", path)
		return nil
	}

	if _, err := os.Stat(configFile); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configFile)
	}
	if err := config.SaveTo(config.Default(), configFile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config: %s\n", configFile)
	return nil
}

func configPath(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		p, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
