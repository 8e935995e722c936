package azure

import (
	"context"
	"time"
)

// RecordFunc receives one observed API call: its operation name, "success"
// or "error", and the latency in seconds.
type RecordFunc func(operation, result string, latency float64)

// Instrument wraps api so every call is reported to record. The resolver
// sees the wrapped API; the caller decides where observations go.
func Instrument(api API, record RecordFunc) API {
	return &instrumentedAPI{api: api, record: record}
}

type instrumentedAPI struct {
	api    API
	record RecordFunc
}

var _ API = (*instrumentedAPI)(nil)

func (i *instrumentedAPI) observe(operation string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	i.record(operation, result, time.Since(start).Seconds())
}

func (i *instrumentedAPI) Subscriptions(ctx context.Context) ([]Subscription, error) {
	start := time.Now()
	out, err := i.api.Subscriptions(ctx)
	i.observe("subscriptions", start, err)
	return out, err
}

func (i *instrumentedAPI) Locations(ctx context.Context, subscriptionID string) ([]Location, error) {
	start := time.Now()
	out, err := i.api.Locations(ctx, subscriptionID)
	i.observe("locations", start, err)
	return out, err
}

func (i *instrumentedAPI) ZoneMappedLocations(ctx context.Context, subscriptionID string) ([]ZoneMappedLocation, error) {
	start := time.Now()
	out, err := i.api.ZoneMappedLocations(ctx, subscriptionID)
	i.observe("zone_mapped_locations", start, err)
	return out, err
}

func (i *instrumentedAPI) InstanceSizes(ctx context.Context, region, subscriptionID string) ([]InstanceSize, error) {
	start := time.Now()
	out, err := i.api.InstanceSizes(ctx, region, subscriptionID)
	i.observe("instance_sizes", start, err)
	return out, err
}

func (i *instrumentedAPI) ResourceSKUs(ctx context.Context, region, subscriptionID string) ([]ResourceSKU, error) {
	start := time.Now()
	out, err := i.api.ResourceSKUs(ctx, region, subscriptionID)
	i.observe("resource_skus", start, err)
	return out, err
}

func (i *instrumentedAPI) ProviderResourceTypes(ctx context.Context, namespace, subscriptionID string) ([]ResourceTypeInfo, error) {
	start := time.Now()
	out, err := i.api.ProviderResourceTypes(ctx, namespace, subscriptionID)
	i.observe("provider_resource_types", start, err)
	return out, err
}

func (i *instrumentedAPI) NamespaceSKUs(ctx context.Context, namespace, subscriptionID string) ([]NamespaceSKU, error) {
	start := time.Now()
	out, err := i.api.NamespaceSKUs(ctx, namespace, subscriptionID)
	i.observe("namespace_skus", start, err)
	return out, err
}

func (i *instrumentedAPI) CheckCognitiveSKUs(ctx context.Context, region, subscriptionID, kind, resourceType string, skuNames []string) ([]SKUAvailability, error) {
	start := time.Now()
	out, err := i.api.CheckCognitiveSKUs(ctx, region, subscriptionID, kind, resourceType, skuNames)
	i.observe("check_cognitive_skus", start, err)
	return out, err
}

func (i *instrumentedAPI) Usages(ctx context.Context, region, subscriptionID string) ([]Usage, error) {
	start := time.Now()
	out, err := i.api.Usages(ctx, region, subscriptionID)
	i.observe("usages", start, err)
	return out, err
}
