package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/azcap/cmd/azcap/handlers"
)

// SKUs returns the command listing SKU options for a resource type.
//
// Required flags:
//
//	--resource-type, -t: Resource type, e.g. Microsoft.Compute/virtualMachines
//	--location, -l: Region code or display name
func SKUs() *cobra.Command {
	var (
		configPath   string
		resourceType string
		location     string
		subscription string
	)

	cmd := &cobra.Command{
		Use:   "skus",
		Short: "List SKU options for a resource type in a region",
		Long: `List the SKU or size options of a resource type in a region.

Examples:
  azcap skus -t Microsoft.Compute/virtualMachines -l westeurope
  azcap skus -t Microsoft.Storage/storageAccounts -l "West Europe"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.SKUs(cmd.Context(), configPath, resourceType, location, subscription)
		},
	}

	cmd.Flags().StringVarP(&resourceType, "resource-type", "t", "", "Resource type (required)")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Region (required)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVarP(&subscription, "subscription", "s", "", "Subscription ID")
	_ = cmd.MarkFlagRequired("resource-type")
	_ = cmd.MarkFlagRequired("location")

	return cmd
}
