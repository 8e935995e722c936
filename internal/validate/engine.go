// Package validate turns a deployment plan into per-resource availability
// verdicts using the catalog resolver.
package validate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/imamik/azcap/internal/catalog"
	"github.com/imamik/azcap/internal/plan"
)

// Resource types with a dedicated validator. Everything else goes through
// the generic provider-footprint check.
const (
	typeVirtualMachines   = "microsoft.compute/virtualmachines"
	typeDisks             = "microsoft.compute/disks"
	typeCognitiveAccounts = "microsoft.cognitiveservices/accounts"
)

// Engine validates plans against one catalog resolver.
type Engine struct {
	catalog *catalog.Resolver
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine builds an Engine over the given resolver.
func NewEngine(resolver *catalog.Resolver, opts ...Option) *Engine {
	e := &Engine{
		catalog: resolver,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ValidatePlan checks every resource of the plan, in input order, and
// attaches the region's zone mapping table once. Upstream failures degrade
// the affected resource to an unknown verdict rather than failing the plan.
func (e *Engine) ValidatePlan(ctx context.Context, p *plan.Plan) (*plan.Response, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Normalize()

	sub := p.SubscriptionID
	if sub == "" {
		resolved, err := e.catalog.DefaultSubscription(ctx)
		if err != nil {
			return nil, err
		}
		sub = resolved
	}

	results := make([]plan.ResultItem, 0, len(p.Resources))
	for _, res := range p.Resources {
		var item plan.ResultItem
		switch strings.ToLower(res.ResourceType) {
		case typeVirtualMachines:
			item = e.validateInstance(ctx, res, p.Region, sub)
		case typeDisks:
			item = e.validateDisk(ctx, res, p.Region, sub)
		case typeCognitiveAccounts:
			item = e.validateCognitive(ctx, res, p.Region, sub)
		default:
			item = e.validateGeneric(ctx, res, p.Region, sub)
		}
		results = append(results, item)
	}

	return &plan.Response{
		Region:         p.Region,
		SubscriptionID: sub,
		Results:        results,
		ZoneMapping:    e.zoneMapping(ctx, p.Region, sub),
	}, nil
}

// zoneMapping fetches the region's logical-to-physical zone table, dropping
// malformed entries. A lookup failure only loses the summary, never the plan.
func (e *Engine) zoneMapping(ctx context.Context, region, sub string) []plan.ZoneMapping {
	mappings, err := e.catalog.ZoneMappingFor(ctx, region, sub)
	if err != nil {
		e.logger.Warn("zone mapping lookup failed", "region", region, "error", err)
		return nil
	}
	out := make([]plan.ZoneMapping, 0, len(mappings))
	for _, m := range mappings {
		if m.LogicalZone == "" || m.PhysicalZone == "" {
			continue
		}
		out = append(out, plan.ZoneMapping{LogicalZone: m.LogicalZone, PhysicalZone: m.PhysicalZone})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (e *Engine) validateInstance(ctx context.Context, res plan.Resource, region, sub string) plan.ResultItem {
	size := res.SKU
	if size == "" {
		return result(res, plan.StatusUnknown, "VM size missing (sku).")
	}

	sizes, err := e.catalog.InstanceSizes(ctx, region, sub)
	if err != nil {
		return e.degraded(res, "instance size lookup failed", err)
	}
	found := false
	for _, s := range sizes {
		if s.Name == size {
			found = true
			break
		}
	}
	if !found {
		return result(res, plan.StatusUnavailable, fmt.Sprintf("VM size %s is not available in %s.", size, region))
	}

	// Enrichment from the SKU catalog is best effort; the size listing above
	// already established availability.
	var matching []catalog.SKU
	skus, err := e.catalog.ResourceSKUs(ctx, region, sub)
	if err != nil {
		e.logger.Warn("sku catalog lookup failed, verdict unenriched", "size", size, "region", region, "error", err)
	} else {
		for _, s := range skus {
			if strings.EqualFold(s.ResourceType, "virtualMachines") && (s.Name == size || s.Size == size) {
				matching = append(matching, s)
			}
		}
	}

	details := "Available."
	var zones []string
	if len(matching) > 0 {
		var extras []string
		zones = unionZones(matching)
		if len(zones) > 0 {
			extras = append(extras, "Zones: "+strings.Join(zones, ", "))
		}
		if caps := zoneFeatures(matching); len(caps) > 0 {
			extras = append(extras, "Feature Zones: "+strings.Join(caps, ", "))
		}
		if tier := firstField(matching, func(s catalog.SKU) string { return s.Tier }); tier != "" {
			extras = append(extras, "Tier: "+tier)
		}
		if family := firstField(matching, func(s catalog.SKU) string { return s.Family }); family != "" {
			extras = append(extras, "Family: "+family)
		}
		if len(extras) > 0 {
			details += " " + strings.Join(extras, "; ") + "."
		}
	}

	if len(res.Zones) > 0 && len(matching) > 0 {
		requested := normalizeZones(res.Zones)
		if len(zones) == 0 {
			return result(res, plan.StatusUnavailable,
				fmt.Sprintf("Requested zones %s but size not zonally available in %s.", strings.Join(requested, ", "), region))
		}
		if missing := subtractZones(requested, zones); len(missing) > 0 {
			return result(res, plan.StatusUnavailable,
				fmt.Sprintf("Missing requested zones: %s; available zones: %s.", strings.Join(missing, ", "), strings.Join(zones, ", ")))
		}
		details += fmt.Sprintf(" Requested zones satisfied: %s.", strings.Join(requested, ", "))
	}

	if issues := capabilityIssues(res.Features, matching); len(issues) > 0 {
		return result(res, plan.StatusUnknown, strings.Join(issues, "; "))
	}
	return result(res, plan.StatusAvailable, details)
}

func (e *Engine) validateDisk(ctx context.Context, res plan.Resource, region, sub string) plan.ResultItem {
	if res.SKU == "" {
		return result(res, plan.StatusUnknown, "Disk SKU missing (sku).")
	}
	skus, err := e.catalog.ResourceSKUs(ctx, region, sub)
	if err != nil {
		return e.degraded(res, "disk sku lookup failed", err)
	}
	for _, s := range skus {
		if strings.EqualFold(s.ResourceType, "disks") && s.Name == res.SKU && !s.Restricted {
			return result(res, plan.StatusAvailable, "Available.")
		}
	}
	return result(res, plan.StatusUnavailable, fmt.Sprintf("Disk SKU %s not available in %s.", res.SKU, region))
}

func (e *Engine) validateCognitive(ctx context.Context, res plan.Resource, region, sub string) plan.ResultItem {
	verdict := e.catalog.OpenAIAvailability(ctx, region, sub)
	switch {
	case verdict.Available == nil:
		return result(res, plan.StatusUnknown,
			strings.TrimSpace(fmt.Sprintf("Azure OpenAI availability indeterminate in %s. %s", region, verdict.Details)))
	case *verdict.Available:
		return result(res, plan.StatusAvailable,
			strings.TrimSpace(fmt.Sprintf("Azure OpenAI available in %s. %s", region, verdict.Details)))
	default:
		return result(res, plan.StatusUnavailable,
			strings.TrimSpace(fmt.Sprintf("Azure OpenAI not available in %s. %s", region, verdict.Details)))
	}
}

func (e *Engine) validateGeneric(ctx context.Context, res plan.Resource, region, sub string) plan.ResultItem {
	avail, err := e.catalog.IsResourceAvailable(ctx, res.ResourceType, region, sub)
	if err != nil {
		return e.degraded(res, "provider lookup failed", err)
	}
	if avail.Available {
		return result(res, plan.StatusAvailable, "Available (provider).")
	}
	reason := avail.Reason
	if reason == "" {
		reason = fmt.Sprintf("%s not available in %s for this subscription.", res.ResourceType, region)
	}
	return result(res, plan.StatusUnavailable, reason)
}

// degraded marks a single resource unknown after an upstream failure.
func (e *Engine) degraded(res plan.Resource, msg string, err error) plan.ResultItem {
	e.logger.Warn(msg, "resource_type", res.ResourceType, "error", err)
	return result(res, plan.StatusUnknown, fmt.Sprintf("%s: %v", msg, err))
}

func result(res plan.Resource, status plan.Status, details string) plan.ResultItem {
	return plan.ResultItem{Resource: res, Status: status, Details: details}
}

func unionZones(skus []catalog.SKU) []string {
	set := make(map[string]struct{})
	for _, s := range skus {
		for _, z := range s.Zones {
			set[z] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// zoneFeatures collects capability names flagged true in any zone group.
func zoneFeatures(skus []catalog.SKU) []string {
	set := make(map[string]struct{})
	for _, s := range skus {
		for _, group := range s.ZoneCapabilities {
			for name, val := range group {
				if strings.EqualFold(val, "true") {
					set[name] = struct{}{}
				}
			}
		}
	}
	return sortedKeys(set)
}

// capabilityIssues compares requested features against the catalog's
// capability maps, case-insensitively on values. Keys are visited in sorted
// order so the verdict text is stable.
func capabilityIssues(features map[string]any, matching []catalog.SKU) []string {
	if len(features) == 0 || len(matching) == 0 {
		return nil
	}
	keys := make([]string, 0, len(features))
	for k := range features {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var issues []string
	for _, k := range keys {
		want := fmt.Sprint(features[k])
		for _, m := range matching {
			got, ok := m.Capabilities[k]
			if ok && !strings.EqualFold(got, want) {
				issues = append(issues, fmt.Sprintf("Capability %s=%s does not meet requirement %v", k, got, features[k]))
			}
		}
	}
	return issues
}

func normalizeZones(zones []string) []string {
	set := make(map[string]struct{})
	for _, z := range zones {
		if z = strings.TrimSpace(z); z != "" {
			set[z] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func subtractZones(requested, available []string) []string {
	have := make(map[string]struct{}, len(available))
	for _, z := range available {
		have[z] = struct{}{}
	}
	var missing []string
	for _, z := range requested {
		if _, ok := have[z]; !ok {
			missing = append(missing, z)
		}
	}
	return missing
}

func firstField(skus []catalog.SKU, pick func(catalog.SKU) string) string {
	for _, s := range skus {
		if v := pick(s); v != "" {
			return v
		}
	}
	return ""
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
