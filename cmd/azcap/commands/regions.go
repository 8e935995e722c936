package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/azcap/cmd/azcap/handlers"
)

// Regions returns the command listing the subscription's regions.
func Regions() *cobra.Command {
	var (
		configPath   string
		subscription string
	)

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List the regions of a subscription",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Regions(cmd.Context(), configPath, subscription)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVarP(&subscription, "subscription", "s", "", "Subscription ID (default: configured or first visible)")

	return cmd
}
