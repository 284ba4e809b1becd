package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bmorg/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage bmorg configuration",
	Long:  `Manage the configuration file holding probe, analyzer and organizer settings.`,
}

var configForce bool

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write a configuration file populated with the default settings.

The file goes to --config when given, otherwise to ~/.config/bmorg/config.yaml.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the resolved configuration",
	Long:  `Display the configuration after merging file, environment and defaults.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := cfgFile
	if configPath == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
		configPath = defaultPath
	}

	if _, err := os.Stat(configPath); err == nil && !configForce {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
	}

	if err := config.Save(config.Default(), configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if jsonOutput {
		output := map[string]string{
			"status": "success",
			"path":   configPath,
		}
		return json.NewEncoder(os.Stdout).Encode(output)
	}

	fmt.Printf("✓ Configuration saved to %s\n", configPath)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(cfg)
	}

	fmt.Println("Probe:")
	fmt.Printf("  concurrency:     %d\n", cfg.Probe.Concurrency)
	fmt.Printf("  timeout:         %s\n", cfg.Probe.Timeout)
	fmt.Printf("  user agent:      %s\n", cfg.Probe.UserAgent)
	if len(cfg.Probe.ExcludeDomains) > 0 {
		fmt.Printf("  exclude domains: %s\n", strings.Join(cfg.Probe.ExcludeDomains, ", "))
	}
	fmt.Println("Analyzer:")
	fmt.Printf("  max features:      %d\n", cfg.Analyzer.MaxFeatures)
	fmt.Printf("  cluster eps:       %g\n", cfg.Analyzer.ClusterEps)
	fmt.Printf("  cluster min pts:   %d\n", cfg.Analyzer.ClusterMinPts)
	fmt.Printf("  min category size: %d\n", cfg.Analyzer.MinCategorySize)
	fmt.Println("Organizer:")
	fmt.Printf("  max per folder: %d\n", cfg.Organizer.MaxPerFolder)
	return nil
}
