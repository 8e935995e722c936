package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/azcap/cmd/azcap/handlers"
)

// Validate returns the command for one-shot plan validation.
//
// Required flags:
//
//	--file, -f: Path to the plan file (YAML or JSON)
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file
//	--output, -o: Output format, "table" or "json"
func Validate() *cobra.Command {
	var (
		configPath string
		planPath   string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a deployment plan file",
		Long: `Validate a deployment plan against the region's live catalogs.

The plan file lists a region and the resources to check:

  region: westeurope
  resources:
    - resource_type: Microsoft.Compute/virtualMachines
      sku: Standard_D4s_v5
      quantity: 2
    - resource_type: Microsoft.Compute/disks
      sku: Premium_LRS

Examples:
  # Validate and print a verdict table
  azcap validate -f plan.yaml

  # Machine-readable output
  azcap validate -f plan.yaml -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Validate(cmd.Context(), configPath, planPath, output)
		},
	}

	cmd.Flags().StringVarP(&planPath, "file", "f", "", "Path to the plan file (required)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
