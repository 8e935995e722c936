// Package catalog resolves provider capacity metadata into uniform shapes.
//
// Azure's catalogs are inconsistent: some key regions by code, others by
// display name; SKU restrictions appear flat or nested; some resource types
// cannot enumerate SKUs at all. The resolver absorbs every one of those
// quirks behind cache-backed lookups so validators never special-case them.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/imamik/azcap/internal/azure"
	"github.com/imamik/azcap/internal/cache"
	"github.com/imamik/azcap/internal/location"
)

// Cache identities, one per upstream lookup. Invalidation is per identity.
const (
	idSubscriptions  = "subscriptions"
	idRegions        = "regions"
	idZoneMappings   = "zone_mappings"
	idInstanceSizes  = "instance_sizes"
	idResourceSKUs   = "resource_skus"
	idProviderTypes  = "provider_types"
	idNamespaceSKUs  = "namespace_skus"
	idCognitiveProbe = "cognitive_probe"
	idUsages         = "usages"
)

// Per-lookup TTLs. Zone mappings are effectively static per subscription;
// SKU catalogs churn slowly; the subscription list is the most volatile.
const (
	ttlSubscriptions  = 5 * time.Minute
	ttlRegions        = 15 * time.Minute
	ttlZoneMappings   = 6 * time.Hour
	ttlInstanceSizes  = 30 * time.Minute
	ttlResourceSKUs   = 15 * time.Minute
	ttlProviderTypes  = time.Hour
	ttlNamespaceSKUs  = 30 * time.Minute
	ttlCognitiveProbe = 15 * time.Minute
	ttlUsages         = 5 * time.Minute
)

// ErrNoSubscription is returned when no subscription is configured and the
// credential can see none.
var ErrNoSubscription = errors.New("no subscription available: configure subscription_id or grant the credential access to one")

// Resolver fetches and shapes catalog data through a TTL cache.
type Resolver struct {
	api                 azure.API
	cache               *cache.Cache
	logger              *slog.Logger
	defaultSubscription string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithDefaultSubscription pins the subscription used when a caller passes
// none. Without it the first listed subscription is used.
func WithDefaultSubscription(id string) Option {
	return func(r *Resolver) {
		r.defaultSubscription = id
	}
}

// NewResolver builds a Resolver over the given API and cache.
func NewResolver(api azure.API, c *cache.Cache, opts ...Option) *Resolver {
	r := &Resolver{
		api:    api,
		cache:  c,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ClearCache drops every cached catalog entry.
func (r *Resolver) ClearCache() {
	r.cache.Clear()
}

// DefaultSubscription resolves the subscription to use when the caller did
// not name one: the configured default, else the first listed subscription.
func (r *Resolver) DefaultSubscription(ctx context.Context) (string, error) {
	if r.defaultSubscription != "" {
		return r.defaultSubscription, nil
	}
	subs, err := r.Subscriptions(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve default subscription: %w", err)
	}
	if len(subs) == 0 {
		return "", ErrNoSubscription
	}
	return subs[0].ID, nil
}

// subscription resolves sub, falling back to the default.
func (r *Resolver) subscription(ctx context.Context, sub string) (string, error) {
	if sub != "" {
		return sub, nil
	}
	return r.DefaultSubscription(ctx)
}

// Subscriptions lists the subscriptions visible to the credential.
func (r *Resolver) Subscriptions(ctx context.Context) ([]azure.Subscription, error) {
	return cache.GetTyped(r.cache, idSubscriptions, cache.NewKey(), ttlSubscriptions, func() ([]azure.Subscription, error) {
		return r.api.Subscriptions(ctx)
	})
}

// Regions lists the regions of a subscription.
func (r *Resolver) Regions(ctx context.Context, sub string) ([]Region, error) {
	sub, err := r.subscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	return cache.GetTyped(r.cache, idRegions, cache.NewKey(sub), ttlRegions, func() ([]Region, error) {
		locs, err := r.api.Locations(ctx, sub)
		if err != nil {
			return nil, err
		}
		out := make([]Region, 0, len(locs))
		for _, l := range locs {
			out = append(out, Region{
				Name:                l.Name,
				DisplayName:         l.DisplayName,
				RegionalDisplayName: l.RegionalDisplayName,
			})
		}
		return out, nil
	})
}

// regionPairs exposes the subscription's region catalog to the normalizer.
// Errors are tolerated: variant matching then degrades to input-only, which
// still matches same-scheme catalogs.
func (r *Resolver) regionPairs(ctx context.Context, sub string) []location.Pair {
	regions, err := r.Regions(ctx, sub)
	if err != nil {
		r.logger.Warn("region catalog unavailable, variant matching degraded", "error", err)
		return nil
	}
	pairs := make([]location.Pair, 0, len(regions))
	for _, reg := range regions {
		pairs = append(pairs, location.Pair{Code: reg.Name, DisplayName: reg.DisplayName})
	}
	return pairs
}

// ZoneMappedRegions lists regions with their logical-to-physical zone
// mappings. Physical zones are subscription-specific, so the subscription is
// part of the cache key.
func (r *Resolver) ZoneMappedRegions(ctx context.Context, sub string) ([]ZoneMappedRegion, error) {
	sub, err := r.subscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	return cache.GetTyped(r.cache, idZoneMappings, cache.NewKey(sub), ttlZoneMappings, func() ([]ZoneMappedRegion, error) {
		locs, err := r.api.ZoneMappedLocations(ctx, sub)
		if err != nil {
			return nil, err
		}
		out := make([]ZoneMappedRegion, 0, len(locs))
		for _, l := range locs {
			reg := ZoneMappedRegion{Name: l.Name, DisplayName: l.DisplayName}
			for _, m := range l.ZoneMappings {
				reg.ZoneMappings = append(reg.ZoneMappings, ZoneMapping{
					LogicalZone:  m.LogicalZone,
					PhysicalZone: m.PhysicalZone,
				})
			}
			out = append(out, reg)
		}
		return out, nil
	})
}

// ZoneMappingFor returns the zone mapping table of one region, or nil when
// the region has none.
func (r *Resolver) ZoneMappingFor(ctx context.Context, region, sub string) ([]ZoneMapping, error) {
	regions, err := r.ZoneMappedRegions(ctx, sub)
	if err != nil {
		return nil, err
	}
	for _, reg := range regions {
		if location.Equal(reg.Name, region) || location.Equal(reg.DisplayName, region) {
			return reg.ZoneMappings, nil
		}
	}
	return nil, nil
}

// InstanceSizes lists the VM sizes offered in a region.
func (r *Resolver) InstanceSizes(ctx context.Context, region, sub string) ([]InstanceSize, error) {
	sub, err := r.subscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	return cache.GetTyped(r.cache, idInstanceSizes, cache.NewKey(region, sub), ttlInstanceSizes, func() ([]InstanceSize, error) {
		sizes, err := r.api.InstanceSizes(ctx, region, sub)
		if err != nil {
			return nil, err
		}
		out := make([]InstanceSize, 0, len(sizes))
		for _, s := range sizes {
			out = append(out, InstanceSize(s))
		}
		return out, nil
	})
}

// ResourceSKUs lists the compute resource-SKU catalog shaped for region:
// entries not offered there are dropped, Restricted reflects restrictions
// applying there, and Zones/ZoneCapabilities are extracted from the entry's
// location-info for that region (matched case-insensitively). With an empty
// region the full catalog is returned; only location-independent
// restrictions count as Restricted then.
func (r *Resolver) ResourceSKUs(ctx context.Context, region, sub string) ([]SKU, error) {
	sub, err := r.subscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	return cache.GetTyped(r.cache, idResourceSKUs, cache.NewKey(region, sub), ttlResourceSKUs, func() ([]SKU, error) {
		raw, err := r.api.ResourceSKUs(ctx, region, sub)
		if err != nil {
			return nil, err
		}
		out := make([]SKU, 0, len(raw))
		for _, s := range raw {
			if sku, ok := shapeSKU(s, region); ok {
				out = append(out, sku)
			}
		}
		return out, nil
	})
}

// shapeSKU projects one raw catalog entry onto the queried region. The
// second return is false when the entry is not offered there.
func shapeSKU(s azure.ResourceSKU, region string) (SKU, bool) {
	sku := SKU{
		Name:         s.Name,
		Tier:         s.Tier,
		ResourceType: s.ResourceType,
		Size:         s.Size,
		Family:       s.Family,
		Locations:    s.Locations,
		Capabilities: s.Capabilities,
	}

	if region != "" {
		listed := false
		for _, loc := range s.Locations {
			if location.Equal(loc, region) {
				listed = true
				break
			}
		}
		if !listed {
			return SKU{}, false
		}
	}

	for _, rest := range s.Restrictions {
		if restrictionApplies(rest, region) {
			sku.Restricted = true
			break
		}
	}

	if region != "" {
		for _, li := range s.LocationInfo {
			if !location.Equal(li.Location, region) {
				continue
			}
			sku.Zones = li.Zones
			for _, zd := range li.ZoneDetails {
				if len(zd.Capabilities) > 0 {
					sku.ZoneCapabilities = append(sku.ZoneCapabilities, zd.Capabilities)
				}
			}
		}
	}
	return sku, true
}

// restrictionApplies reports whether a restriction disables the SKU in
// region. A restriction with no location list applies everywhere; with a
// region queried, a restriction naming that region applies too.
func restrictionApplies(rest azure.SKURestriction, region string) bool {
	if len(rest.Locations) == 0 {
		return true
	}
	if region == "" {
		return false
	}
	for _, loc := range rest.Locations {
		if location.Equal(loc, region) {
			return true
		}
	}
	return false
}

// ResourceTypeLocations lists the declared footprint of every resource type
// under a provider namespace.
func (r *Resolver) ResourceTypeLocations(ctx context.Context, namespace, sub string) ([]ResourceTypeFootprint, error) {
	sub, err := r.subscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	return cache.GetTyped(r.cache, idProviderTypes, cache.NewKey(namespace, sub), ttlProviderTypes, func() ([]ResourceTypeFootprint, error) {
		infos, err := r.api.ProviderResourceTypes(ctx, namespace, sub)
		if err != nil {
			return nil, err
		}
		out := make([]ResourceTypeFootprint, 0, len(infos))
		for _, info := range infos {
			out = append(out, ResourceTypeFootprint(info))
		}
		return out, nil
	})
}

// IsResourceAvailable checks whether a resource type ("Namespace/Type") is
// declared for a region. Provider footprints may list regions as display
// names, so membership goes through the normalizer's variant matching. With
// an empty region the type merely has to exist.
func (r *Resolver) IsResourceAvailable(ctx context.Context, resourceType, region, sub string) (Availability, error) {
	namespace, typeName, ok := splitResourceType(resourceType)
	if !ok {
		return Availability{
			Reason: fmt.Sprintf("invalid resource type %q, want Namespace/Type", resourceType),
		}, nil
	}

	sub, err := r.subscription(ctx, sub)
	if err != nil {
		return Availability{}, err
	}

	footprints, err := r.ResourceTypeLocations(ctx, namespace, sub)
	if err != nil {
		return Availability{}, err
	}

	avail := Availability{Provider: namespace, Type: typeName}
	var footprint *ResourceTypeFootprint
	for i := range footprints {
		if strings.EqualFold(footprints[i].ResourceType, typeName) {
			footprint = &footprints[i]
			break
		}
	}
	if footprint == nil {
		avail.Reason = fmt.Sprintf("resource type %s not found under provider %s", typeName, namespace)
		return avail, nil
	}
	avail.Locations = footprint.Locations

	if region == "" {
		avail.Available = true
		return avail, nil
	}

	known := r.regionPairs(ctx, sub)
	for _, loc := range footprint.Locations {
		if location.Matches(region, loc, known) {
			avail.Available = true
			return avail, nil
		}
	}
	avail.Reason = fmt.Sprintf("%s does not list region %s", resourceType, region)
	return avail, nil
}

// NamespaceSKUs enumerates a provider-wide SKU catalog, best effort. Entries
// declaring no locations are treated as globally available and kept; with a
// target resource type, entries that do not declare a matching type are
// dropped to avoid returning large unrelated result sets.
func (r *Resolver) NamespaceSKUs(ctx context.Context, namespace, sub, region, targetResourceType string) ([]azure.NamespaceSKU, error) {
	sub, err := r.subscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	all, err := cache.GetTyped(r.cache, idNamespaceSKUs, cache.NewKey(namespace, sub), ttlNamespaceSKUs, func() ([]azure.NamespaceSKU, error) {
		return r.api.NamespaceSKUs(ctx, namespace, sub)
	})
	if err != nil {
		return nil, err
	}

	var known []location.Pair
	if region != "" {
		known = r.regionPairs(ctx, sub)
	}

	out := make([]azure.NamespaceSKU, 0, len(all))
	for _, sku := range all {
		if targetResourceType != "" && !strings.EqualFold(sku.ResourceType, targetResourceType) {
			continue
		}
		if region != "" && len(sku.Locations) > 0 && !anyLocationMatches(region, sku.Locations, known) {
			continue
		}
		out = append(out, sku)
	}
	return out, nil
}

func anyLocationMatches(region string, locations []string, known []location.Pair) bool {
	for _, loc := range locations {
		if location.Matches(region, loc, known) {
			return true
		}
	}
	return false
}

// Usages lists compute quota/usage records for a region.
func (r *Resolver) Usages(ctx context.Context, region, sub string) ([]azure.Usage, error) {
	sub, err := r.subscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	return cache.GetTyped(r.cache, idUsages, cache.NewKey(region, sub), ttlUsages, func() ([]azure.Usage, error) {
		return r.api.Usages(ctx, region, sub)
	})
}

// splitResourceType splits "Namespace/Type" into its parts.
func splitResourceType(resourceType string) (namespace, typeName string, ok bool) {
	namespace, typeName, found := strings.Cut(resourceType, "/")
	if !found || namespace == "" || typeName == "" {
		return "", "", false
	}
	return namespace, typeName, true
}

func cacheTriState(r *Resolver, region, sub, skuName string, fn func() (TriState, error)) (TriState, error) {
	return cache.GetTyped(r.cache, idCognitiveProbe, cache.NewKey(region, sub, skuName), ttlCognitiveProbe, fn)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
