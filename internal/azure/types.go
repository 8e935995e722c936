package azure

// Plain-value shapes for everything the resolver consumes. The real client
// converts the SDK's pointer-heavy wire types (and the raw REST payloads)
// into these exactly once at ingestion, so nothing downstream probes for
// optional fields or alternate key spellings.

// Subscription is one subscription visible to the credential.
type Subscription struct {
	ID          string `json:"subscription_id"`
	DisplayName string `json:"display_name"`
	State       string `json:"state"`
	TenantID    string `json:"tenant_id"`
}

// Location is one region of a subscription's location catalog.
type Location struct {
	Name                string `json:"name"`
	DisplayName         string `json:"display_name"`
	RegionalDisplayName string `json:"regional_display_name,omitempty"`
}

// ZoneMapping maps a subscription-relative logical zone to the physical
// zone behind it. Physical zone identifiers are subscription-specific.
type ZoneMapping struct {
	LogicalZone  string `json:"logicalZone"`
	PhysicalZone string `json:"physicalZone"`
}

// ZoneMappedLocation is a region together with its logical-to-physical zone
// mapping table, when the region has one.
type ZoneMappedLocation struct {
	Name         string        `json:"name"`
	DisplayName  string        `json:"display_name"`
	ZoneMappings []ZoneMapping `json:"zone_mappings,omitempty"`
}

// InstanceSize is one VM size offered in a region.
type InstanceSize struct {
	Name                 string `json:"name"`
	NumberOfCores        int32  `json:"number_of_cores"`
	OSDiskSizeInMB       int32  `json:"os_disk_size_in_mb"`
	ResourceDiskSizeInMB int32  `json:"resource_disk_size_in_mb"`
	MemoryInMB           int32  `json:"memory_in_mb"`
	MaxDataDiskCount     int32  `json:"max_data_disk_count"`
}

// SKUZoneDetail groups a set of zones with the capabilities they share.
type SKUZoneDetail struct {
	Names        []string
	Capabilities map[string]string
}

// SKULocationInfo is the per-location zone/capability breakdown of a SKU.
type SKULocationInfo struct {
	Location    string
	Zones       []string
	ZoneDetails []SKUZoneDetail
}

// SKURestriction explains where a SKU is disabled. An empty Locations list
// means the restriction applies everywhere the SKU is listed.
type SKURestriction struct {
	Type       string
	Values     []string
	Locations  []string
	Zones      []string
	ReasonCode string
}

// ResourceSKU is one entry of the compute resource-SKU catalog.
type ResourceSKU struct {
	Name         string
	Tier         string
	ResourceType string
	Size         string
	Family       string
	Kind         string
	Locations    []string
	LocationInfo []SKULocationInfo
	Capabilities map[string]string
	Restrictions []SKURestriction
}

// ResourceTypeInfo is the declared footprint of one resource type under a
// provider namespace. Locations here are raw provider strings and may be
// display names rather than codes.
type ResourceTypeInfo struct {
	ResourceType string   `json:"resource_type"`
	Locations    []string `json:"locations"`
	APIVersions  []string `json:"api_versions"`
}

// NamespaceSKU is one entry of a provider-wide SKU catalog. These payloads
// are loosely structured; the REST client already reconciled alternate key
// spellings and nested location-info shapes into this form.
type NamespaceSKU struct {
	Name         string   `json:"name"`
	Tier         string   `json:"tier,omitempty"`
	Kind         string   `json:"kind,omitempty"`
	ResourceType string   `json:"resource_type,omitempty"`
	Locations    []string `json:"locations,omitempty"`
}

// SKUAvailability is the verdict of the cognitive-services per-SKU probe.
// Available is nil when the probe returned no usable flag.
type SKUAvailability struct {
	Name      string
	Kind      string
	Type      string
	Available *bool
	Reason    string
	Message   string
}

// Usage is one quota/usage record of a region.
type Usage struct {
	Name          string `json:"name"`
	LocalizedName string `json:"localized_name,omitempty"`
	CurrentValue  int32  `json:"current_value"`
	Limit         int64  `json:"limit"`
	Unit          string `json:"unit,omitempty"`
}
