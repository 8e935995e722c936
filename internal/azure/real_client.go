package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cognitiveservices/armcognitiveservices"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

// Subscriptions lists the subscriptions visible to the credential.
func (c *Client) Subscriptions(ctx context.Context) ([]Subscription, error) {
	client, err := armsubscriptions.NewClient(c.cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	var out []Subscription
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}
		for _, s := range page.Value {
			sub := Subscription{
				ID:          deref(s.SubscriptionID),
				DisplayName: deref(s.DisplayName),
				TenantID:    deref(s.TenantID),
			}
			if s.State != nil {
				sub.State = string(*s.State)
			}
			out = append(out, sub)
		}
	}
	return out, nil
}

// Locations lists the regions of a subscription.
func (c *Client) Locations(ctx context.Context, subscriptionID string) ([]Location, error) {
	client, err := armsubscriptions.NewClient(c.cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	var out []Location
	pager := client.NewListLocationsPager(subscriptionID, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list locations: %w", err)
		}
		for _, l := range page.Value {
			out = append(out, Location{
				Name:                deref(l.Name),
				DisplayName:         deref(l.DisplayName),
				RegionalDisplayName: deref(l.RegionalDisplayName),
			})
		}
	}
	return out, nil
}

// ZoneMappedLocations lists regions with their availability zone mappings.
// The SDK location listing omits availabilityZoneMappings, so this goes
// through the raw REST client.
func (c *Client) ZoneMappedLocations(ctx context.Context, subscriptionID string) ([]ZoneMappedLocation, error) {
	return c.rest.zoneMappedLocations(ctx, subscriptionID)
}

// InstanceSizes lists the VM sizes offered in a region.
func (c *Client) InstanceSizes(ctx context.Context, region, subscriptionID string) ([]InstanceSize, error) {
	client, err := armcompute.NewVirtualMachineSizesClient(subscriptionID, c.cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create vm sizes client: %w", err)
	}

	var out []InstanceSize
	pager := client.NewListPager(region, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list vm sizes in %s: %w", region, err)
		}
		for _, s := range page.Value {
			out = append(out, InstanceSize{
				Name:                 deref(s.Name),
				NumberOfCores:        deref(s.NumberOfCores),
				OSDiskSizeInMB:       deref(s.OSDiskSizeInMB),
				ResourceDiskSizeInMB: deref(s.ResourceDiskSizeInMB),
				MemoryInMB:           deref(s.MemoryInMB),
				MaxDataDiskCount:     deref(s.MaxDataDiskCount),
			})
		}
	}
	return out, nil
}

// ResourceSKUs lists the compute resource-SKU catalog, server-filtered by
// region when one is given.
func (c *Client) ResourceSKUs(ctx context.Context, region, subscriptionID string) ([]ResourceSKU, error) {
	client, err := armcompute.NewResourceSKUsClient(subscriptionID, c.cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource skus client: %w", err)
	}

	var opts *armcompute.ResourceSKUsClientListOptions
	if region != "" {
		filter := fmt.Sprintf("location eq '%s'", region)
		opts = &armcompute.ResourceSKUsClientListOptions{Filter: &filter}
	}

	var out []ResourceSKU
	pager := client.NewListPager(opts)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list resource skus: %w", err)
		}
		for _, s := range page.Value {
			out = append(out, convertResourceSKU(s))
		}
	}
	return out, nil
}

func convertResourceSKU(s *armcompute.ResourceSKU) ResourceSKU {
	sku := ResourceSKU{
		Name:         deref(s.Name),
		Tier:         deref(s.Tier),
		ResourceType: deref(s.ResourceType),
		Size:         deref(s.Size),
		Family:       deref(s.Family),
		Kind:         deref(s.Kind),
		Locations:    derefSlice(s.Locations),
		Capabilities: convertCapabilities(s.Capabilities),
	}
	for _, li := range s.LocationInfo {
		if li == nil {
			continue
		}
		info := SKULocationInfo{
			Location: deref(li.Location),
			Zones:    derefSlice(li.Zones),
		}
		for _, zd := range li.ZoneDetails {
			if zd == nil {
				continue
			}
			info.ZoneDetails = append(info.ZoneDetails, SKUZoneDetail{
				Names:        derefSlice(zd.Name),
				Capabilities: convertCapabilities(zd.Capabilities),
			})
		}
		sku.LocationInfo = append(sku.LocationInfo, info)
	}
	for _, r := range s.Restrictions {
		if r == nil {
			continue
		}
		restriction := SKURestriction{
			Values: derefSlice(r.Values),
		}
		if r.Type != nil {
			restriction.Type = string(*r.Type)
		}
		if r.ReasonCode != nil {
			restriction.ReasonCode = string(*r.ReasonCode)
		}
		if r.RestrictionInfo != nil {
			restriction.Locations = derefSlice(r.RestrictionInfo.Locations)
			restriction.Zones = derefSlice(r.RestrictionInfo.Zones)
		}
		sku.Restrictions = append(sku.Restrictions, restriction)
	}
	return sku
}

func convertCapabilities(caps []*armcompute.ResourceSKUCapabilities) map[string]string {
	if len(caps) == 0 {
		return nil
	}
	out := make(map[string]string, len(caps))
	for _, c := range caps {
		if c == nil || c.Name == nil {
			continue
		}
		out[*c.Name] = deref(c.Value)
	}
	return out
}

// ProviderResourceTypes lists every resource type under a provider
// namespace with its declared locations and API versions.
func (c *Client) ProviderResourceTypes(ctx context.Context, namespace, subscriptionID string) ([]ResourceTypeInfo, error) {
	client, err := armresources.NewProvidersClient(subscriptionID, c.cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create providers client: %w", err)
	}

	resp, err := client.Get(ctx, namespace, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider %s: %w", namespace, err)
	}

	var out []ResourceTypeInfo
	for _, rt := range resp.ResourceTypes {
		if rt == nil {
			continue
		}
		out = append(out, ResourceTypeInfo{
			ResourceType: deref(rt.ResourceType),
			Locations:    derefSlice(rt.Locations),
			APIVersions:  derefSlice(rt.APIVersions),
		})
	}
	return out, nil
}

// NamespaceSKUs lists a provider-wide SKU catalog via the raw REST client;
// these endpoints return loosely structured JSON that varies per provider.
func (c *Client) NamespaceSKUs(ctx context.Context, namespace, subscriptionID string) ([]NamespaceSKU, error) {
	return c.rest.namespaceSKUs(ctx, subscriptionID, namespace)
}

// CheckCognitiveSKUs probes per-SKU availability of a cognitive services
// offering in a region.
func (c *Client) CheckCognitiveSKUs(ctx context.Context, region, subscriptionID, kind, resourceType string, skuNames []string) ([]SKUAvailability, error) {
	client, err := armcognitiveservices.NewManagementClient(subscriptionID, c.cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cognitive services client: %w", err)
	}

	skus := make([]*string, 0, len(skuNames))
	for i := range skuNames {
		skus = append(skus, &skuNames[i])
	}
	params := armcognitiveservices.CheckSKUAvailabilityParameter{
		Kind: &kind,
		Type: &resourceType,
		SKUs: skus,
	}
	resp, err := client.CheckSKUAvailability(ctx, region, params, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check cognitive sku availability in %s: %w", region, err)
	}

	var out []SKUAvailability
	for _, v := range resp.Value {
		if v == nil {
			continue
		}
		out = append(out, SKUAvailability{
			Name:      deref(v.SKUName),
			Kind:      deref(v.Kind),
			Type:      deref(v.Type),
			Available: v.SKUAvailable,
			Reason:    deref(v.Reason),
			Message:   deref(v.Message),
		})
	}
	return out, nil
}

// Usages lists compute quota/usage records for a region.
func (c *Client) Usages(ctx context.Context, region, subscriptionID string) ([]Usage, error) {
	client, err := armcompute.NewUsageClient(subscriptionID, c.cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create usage client: %w", err)
	}

	var out []Usage
	pager := client.NewListPager(region, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list usages in %s: %w", region, err)
		}
		for _, u := range page.Value {
			if u == nil {
				continue
			}
			usage := Usage{
				CurrentValue: deref(u.CurrentValue),
				Limit:        deref(u.Limit),
				Unit:         deref(u.Unit),
			}
			if u.Name != nil {
				usage.Name = deref(u.Name.Value)
				usage.LocalizedName = deref(u.Name.LocalizedValue)
			}
			out = append(out, usage)
		}
	}
	return out, nil
}

// deref returns the value behind p, or the zero value for nil.
func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func derefSlice(ps []*string) []string {
	if len(ps) == 0 {
		return nil
	}
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}
