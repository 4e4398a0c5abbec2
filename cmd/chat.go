package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Rorical/Nyssa/internal/models"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the AI assistant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(models.ScreenChat, nil)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
