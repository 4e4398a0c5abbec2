package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rorical/Nyssa/internal/config"
	"github.com/Rorical/Nyssa/internal/models"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and open Nyssa",
	Long:  `Switch to the specified profile and immediately open the home screen.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := switchProfile(args[0]); err != nil {
			return err
		}
		return runApp(models.ScreenHome, nil)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}

// switchProfile makes name the active profile in config.json
func switchProfile(name string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.UseProfile(name); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
