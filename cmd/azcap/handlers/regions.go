package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
)

// Regions prints the subscription's region catalog.
func Regions(ctx context.Context, configPath, subscriptionID string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	app, err := newApp(configPath, logger)
	if err != nil {
		return err
	}

	regions, err := app.Catalog.Regions(ctx, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to list regions: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "CODE\tDISPLAY NAME\n")
	for _, r := range regions {
		fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.DisplayName)
	}
	return tw.Flush()
}
