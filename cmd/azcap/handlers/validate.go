package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/imamik/azcap/internal/plan"
)

// Validate runs a one-shot plan validation and prints the verdicts.
func Validate(ctx context.Context, configPath, planPath, output string) error {
	if output != "table" && output != "json" {
		return fmt.Errorf("unknown output format %q, want table or json", output)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	app, err := newApp(configPath, logger)
	if err != nil {
		return err
	}

	p, err := loadPlan(planPath)
	if err != nil {
		return err
	}

	resp, err := app.Engine.ValidatePlan(ctx, p)
	if err != nil {
		return fmt.Errorf("plan validation failed: %w", err)
	}

	return printResponse(os.Stdout, resp, output)
}

// loadPlan reads a plan file. YAML is a superset of JSON, so one decoder
// covers both formats.
func loadPlan(path string) (*plan.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	var p plan.Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan file: %w", err)
	}
	return &p, nil
}

func printResponse(w io.Writer, resp *plan.Response, output string) error {
	if output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "STATUS\tTYPE\tSKU\tDETAILS\n")
	for _, item := range resp.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.Status, item.Resource.ResourceType, item.Resource.SKU, item.Details)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(resp.ZoneMapping) > 0 {
		fmt.Fprintf(w, "\nZone mapping for %s:\n", resp.Region)
		for _, m := range resp.ZoneMapping {
			fmt.Fprintf(w, "  %s -> %s\n", m.LogicalZone, m.PhysicalZone)
		}
	}
	return nil
}
