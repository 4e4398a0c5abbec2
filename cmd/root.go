package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Rorical/Nyssa/internal/app"
	"github.com/Rorical/Nyssa/internal/config"
	"github.com/Rorical/Nyssa/internal/logger"
	"github.com/Rorical/Nyssa/internal/models"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "nyssa",
	Short: "Period and health assistant for the terminal",
	Long: `Nyssa is a personal period and health advisor. Chat with the AI assistant
or set a menstrual cup alert.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the home screen
		return runApp(models.ScreenHome, nil)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}

// setupLogging sends logs to nyssa.log in the config home. An empty level
// falls back to NYSSA_LOG_LEVEL.
func setupLogging(level string) error {
	home, err := config.HomeDir()
	if err != nil {
		return fmt.Errorf("failed to locate config home: %w", err)
	}
	if err := os.MkdirAll(home, 0755); err != nil {
		return fmt.Errorf("failed to create config home: %w", err)
	}
	if err := logger.Configure(level, filepath.Join(home, "nyssa.log")); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	return nil
}

// runApp loads the config, lets adjust tweak it for this run, and blocks
// until the UI exits.
func runApp(screen models.Screen, adjust func(*config.Config) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// the flag wins over the config file
	if logLevel == "" && cfg.GetLogLevel() != "" {
		if err := setupLogging(cfg.GetLogLevel()); err != nil {
			return err
		}
	}
	if adjust != nil {
		if err := adjust(cfg); err != nil {
			return err
		}
	}

	logger.Info("starting", "screen", screen, "profile", cfg.ActiveProfile, "provider", cfg.GetProvider())

	application, err := app.NewApplication(cfg, screen)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}
