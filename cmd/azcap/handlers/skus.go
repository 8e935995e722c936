package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
)

// SKUs prints the SKU options of a resource type in a region.
func SKUs(ctx context.Context, configPath, resourceType, location, subscriptionID string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	app, err := newApp(configPath, logger)
	if err != nil {
		return err
	}

	items, supported, err := app.Catalog.SKUOptions(ctx, resourceType, location, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to list SKUs: %w", err)
	}
	if !supported {
		fmt.Printf("no SKU listing available for %s\n", resourceType)
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tDETAILS\n")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\n", item.Name, item.Details)
	}
	return tw.Flush()
}
