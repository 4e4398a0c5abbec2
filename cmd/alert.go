package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rorical/Nyssa/internal/config"
	"github.com/Rorical/Nyssa/internal/models"
)

var (
	alertDelay   time.Duration
	alertNoSound bool
)

var alertCmd = &cobra.Command{
	Use:   "alert",
	Short: "Open the menstrual cup alert",
	Long: `Open the menstrual cup alert screen. After the delay a sound loops until
the alert is acknowledged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(models.ScreenAlert, func(cfg *config.Config) error {
			if cmd.Flags().Changed("delay") {
				if alertDelay <= 0 {
					return fmt.Errorf("delay must be positive, got %s", alertDelay)
				}
				cfg.SetAlertDelay(alertDelay)
			}
			if alertNoSound {
				cfg.DisableSound()
			}
			return nil
		})
	},
}

func init() {
	alertCmd.Flags().DurationVar(&alertDelay, "delay", 0, "delay before the alert sounds (default from config, 8s)")
	alertCmd.Flags().BoolVar(&alertNoSound, "no-sound", false, "show the alert without playing a sound")
	rootCmd.AddCommand(alertCmd)
}
