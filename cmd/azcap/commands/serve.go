package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/azcap/cmd/azcap/handlers"
)

// Serve returns the command that runs the HTTP API.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file
//
// Environment variables override file values (AZCAP_LISTEN_ADDR,
// AZCAP_SUBSCRIPTION_ID, AZCAP_CORS_ORIGINS, AZCAP_CACHE_TTL).
func Serve() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the capacity validation HTTP API",
		Long: `Run the capacity validation HTTP API.

The server exposes catalog passthroughs (subscriptions, locations, VM
sizes, resource SKUs, zone mappings) and plan validation under /api, plus
Prometheus metrics under /metrics.

Examples:
  # Serve on the default :8080
  azcap serve

  # Serve with a config file
  azcap serve -c azcap.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Serve(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")

	return cmd
}
