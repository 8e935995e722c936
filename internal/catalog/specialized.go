package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Resource types with specialized SKU handling. Key Vault, storage, public
// IP and App Service tiers have no per-region catalog; their offerings are
// global once the resource type itself is available in a region, so curated
// tier tables stand in for enumeration. Cognitive accounts get a live
// per-SKU probe instead.
const (
	typeVirtualMachines   = "microsoft.compute/virtualmachines"
	typeDisks             = "microsoft.compute/disks"
	typeKeyVaults         = "microsoft.keyvault/vaults"
	typeCognitiveAccounts = "microsoft.cognitiveservices/accounts"
	typeStorageAccounts   = "microsoft.storage/storageaccounts"
	typePublicIPs         = "microsoft.network/publicipaddresses"
	typeServerFarms       = "microsoft.web/serverfarms"
	typeSites             = "microsoft.web/sites"
)

// cognitive probe parameters for the OpenAI offering.
const (
	cognitiveKind = "OpenAI"
	cognitiveType = "Microsoft.CognitiveServices/accounts"
)

var keyVaultTiers = []SKUOption{
	{Name: "standard", Details: "Key Vault Standard"},
	{Name: "premium", Details: "Key Vault Premium"},
}

var storageAccountTiers = []SKUOption{
	{Name: "Standard_LRS", Details: "Standard Locally Redundant"},
	{Name: "Standard_GRS", Details: "Standard Geo-Redundant"},
	{Name: "Standard_RAGRS", Details: "Standard Read-Access GRS"},
	{Name: "Standard_ZRS", Details: "Standard Zone-Redundant"},
	{Name: "Standard_GZRS", Details: "Standard Geo-Zone Redundant"},
	{Name: "Standard_RAGZRS", Details: "Standard Read-Access GZRS"},
	{Name: "Premium_LRS", Details: "Premium (e.g. File Shares / Page Blobs)"},
}

var publicIPTiers = []SKUOption{
	{Name: "Basic", Details: "Basic SKU"},
	{Name: "Standard", Details: "Standard SKU"},
}

var appServiceTiers = []SKUOption{
	{Name: "F1", Details: "Free"},
	{Name: "B1", Details: "Basic Small"},
	{Name: "S1", Details: "Standard Small"},
	{Name: "P1v3", Details: "Premium v3 P1"},
	{Name: "I1v2", Details: "Isolated v2 I1"},
}

// cognitiveTiers are probed individually; Details is the label shown when
// the probe confirms availability.
var cognitiveTiers = []SKUOption{
	{Name: "F0", Details: "Free (quota limited)"},
	{Name: "S0", Details: "Standard"},
}

// SKUOptions returns the SKU/size choices for a resource type in a region.
// supported is false when the type has no specialized listing; callers must
// not treat that as an empty catalog.
func (r *Resolver) SKUOptions(ctx context.Context, resourceType, region, sub string) (items []SKUOption, supported bool, err error) {
	switch strings.ToLower(resourceType) {
	case typeVirtualMachines:
		items, err = r.vmSizeOptions(ctx, region, sub)
		return items, true, err
	case typeDisks:
		items, err = r.diskSKUOptions(ctx, region, sub)
		return items, true, err
	case typeKeyVaults:
		return keyVaultTiers, true, nil
	case typeCognitiveAccounts:
		return r.cognitiveSKUOptions(ctx, region, sub), true, nil
	case typeStorageAccounts:
		return storageAccountTiers, true, nil
	case typePublicIPs:
		return publicIPTiers, true, nil
	case typeServerFarms, typeSites:
		// Sites deploy onto an App Service Plan; both expose the plan tiers.
		return appServiceTiers, true, nil
	default:
		return nil, false, nil
	}
}

func (r *Resolver) vmSizeOptions(ctx context.Context, region, sub string) ([]SKUOption, error) {
	sizes, err := r.InstanceSizes(ctx, region, sub)
	if err != nil {
		return nil, err
	}
	out := make([]SKUOption, 0, len(sizes))
	for _, s := range sizes {
		var details []string
		if s.MemoryInMB > 0 {
			details = append(details, fmt.Sprintf("%d GB", (s.MemoryInMB+512)/1024))
		}
		if s.NumberOfCores > 0 {
			details = append(details, fmt.Sprintf("%d vCPU", s.NumberOfCores))
		}
		out = append(out, SKUOption{Name: s.Name, Details: strings.Join(details, ", ")})
	}
	return out, nil
}

func (r *Resolver) diskSKUOptions(ctx context.Context, region, sub string) ([]SKUOption, error) {
	skus, err := r.ResourceSKUs(ctx, region, sub)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []SKUOption
	for _, sku := range skus {
		if !strings.EqualFold(sku.ResourceType, "disks") || sku.Restricted || sku.Name == "" {
			continue
		}
		if _, dup := seen[sku.Name]; dup {
			continue
		}
		seen[sku.Name] = struct{}{}
		out = append(out, SKUOption{Name: sku.Name, Details: sku.Tier})
	}
	return out, nil
}

// cognitiveSKUOptions probes each tier individually. A failed probe keeps
// the tier with an "availability unknown" detail rather than dropping it.
func (r *Resolver) cognitiveSKUOptions(ctx context.Context, region, sub string) []SKUOption {
	out := make([]SKUOption, 0, len(cognitiveTiers))
	for _, tier := range cognitiveTiers {
		verdict, err := r.probeCognitive(ctx, region, sub, tier.Name)
		switch {
		case err != nil:
			r.logger.Warn("cognitive sku probe failed", "sku", tier.Name, "region", region, "error", err)
			out = append(out, SKUOption{Name: tier.Name, Details: tier.Details + " (availability unknown)"})
		case verdict.Available != nil && !*verdict.Available:
			out = append(out, SKUOption{Name: tier.Name, Details: tier.Details + " (not available in region)"})
		default:
			out = append(out, tier)
		}
	}
	return out
}

// IsSKUAvailable reports whether a SKU of a resource type can be
// provisioned in a region, per the queried catalogs. It tries the
// specialized listing first, then generic catalog membership. When neither
// source can enumerate SKUs for the type, the answer is optimistically true:
// absence of enumeration capability must never produce a false negative,
// since a false "unavailable" blocks a valid plan outright while a false
// "available" only costs a later provisioning failure.
func (r *Resolver) IsSKUAvailable(ctx context.Context, resourceType, skuName, region, sub string) bool {
	items, supported, err := r.SKUOptions(ctx, resourceType, region, sub)
	if supported {
		if err != nil {
			r.logger.Warn("specialized sku listing failed, assuming available", "resource_type", resourceType, "error", err)
			return true
		}
		for _, item := range items {
			if strings.EqualFold(item.Name, skuName) {
				return true
			}
		}
		return false
	}

	namespace, typeName, ok := splitResourceType(resourceType)
	if !ok {
		return true
	}
	skus, err := r.NamespaceSKUs(ctx, namespace, sub, region, typeName)
	if err != nil {
		r.logger.Warn("namespace sku listing failed, assuming available", "namespace", namespace, "error", err)
		return true
	}
	if len(skus) == 0 {
		// Cannot enumerate for this type: optimistic default.
		return true
	}
	for _, sku := range skus {
		if strings.EqualFold(sku.Name, skuName) {
			return true
		}
	}
	return false
}

// OpenAIAvailability reports region-level availability of the Azure OpenAI
// offering. Model- and deployment-level availability has no reliable catalog
// source and is deliberately not inferred. The verdict is indeterminate when
// any sub-lookup fails.
func (r *Resolver) OpenAIAvailability(ctx context.Context, region, sub string) TriState {
	avail, err := r.IsResourceAvailable(ctx, cognitiveType, region, sub)
	if err != nil {
		return TriState{Details: fmt.Sprintf("provider footprint lookup failed: %v", err)}
	}
	if !avail.Available {
		f := false
		return TriState{Available: &f, Details: avail.Reason}
	}

	verdict, err := r.probeCognitive(ctx, region, sub, "S0")
	if err != nil {
		return TriState{Details: fmt.Sprintf("SKU probe failed: %v", err)}
	}
	return verdict
}

// probeCognitive performs the cached per-SKU availability probe.
func (r *Resolver) probeCognitive(ctx context.Context, region, sub, skuName string) (TriState, error) {
	sub, err := r.subscription(ctx, sub)
	if err != nil {
		return TriState{}, err
	}
	return cacheTriState(r, region, sub, skuName, func() (TriState, error) {
		results, err := r.api.CheckCognitiveSKUs(ctx, region, sub, cognitiveKind, cognitiveType, []string{skuName})
		if err != nil {
			return TriState{}, err
		}
		if len(results) == 0 {
			return TriState{Details: "probe returned no availability data"}, nil
		}
		res := results[0]
		if res.Available == nil {
			return TriState{Details: firstNonEmpty(res.Message, res.Reason, "probe returned no availability flag")}, nil
		}
		details := firstNonEmpty(res.Message, res.Reason)
		if *res.Available && details == "" {
			details = fmt.Sprintf("SKU %s advertised for kind %s.", skuName, cognitiveKind)
		}
		return TriState{Available: res.Available, Details: details}, nil
	})
}
