// Package cli provides the command-line interface for aisite.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/raphaelgruber/aisite-go/internal/config"
	"github.com/raphaelgruber/aisite-go/internal/scenario"
	"github.com/raphaelgruber/aisite-go/internal/timeline"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config, loaded before every command
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "aisite",
	Short: "AI solutions site demos in the terminal",
	Long: `aisite plays the chat-sale, OCR and product search showcases of the
Codelabs AI site in the terminal, lists the scripted scenarios and sends
contact leads to the lead API.

The web site itself is served by aisite-server.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		cfg = config.Load()
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	// Add subcommands
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(ocrCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadTimelines opens the configured scenario catalog and a timeline cache
// over it.
func loadTimelines() (*scenario.Catalog, *timeline.Cache, error) {
	cat, err := scenario.Open(cfg.ScenarioFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load scenarios: %w", err)
	}
	cache, err := timeline.NewCache(cat, 0)
	if err != nil {
		return nil, nil, err
	}
	return cat, cache, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "aisite %s\n", Version)
	},
}
