package catalog

// Region is one entry of a subscription's region catalog.
type Region struct {
	Name                string `json:"name"`
	DisplayName         string `json:"display_name"`
	RegionalDisplayName string `json:"regional_display_name,omitempty"`
}

// ZoneMapping maps a subscription-relative logical zone to its physical
// zone.
type ZoneMapping struct {
	LogicalZone  string `json:"logicalZone"`
	PhysicalZone string `json:"physicalZone"`
}

// ZoneMappedRegion is a region with its zone mapping table.
type ZoneMappedRegion struct {
	Name         string        `json:"name"`
	DisplayName  string        `json:"display_name"`
	ZoneMappings []ZoneMapping `json:"zone_mappings,omitempty"`
}

// InstanceSize is a VM size offered in a region.
type InstanceSize struct {
	Name                 string `json:"name"`
	NumberOfCores        int32  `json:"number_of_cores"`
	OSDiskSizeInMB       int32  `json:"os_disk_size_in_mb"`
	ResourceDiskSizeInMB int32  `json:"resource_disk_size_in_mb"`
	MemoryInMB           int32  `json:"memory_in_mb"`
	MaxDataDiskCount     int32  `json:"max_data_disk_count"`
}

// SKU is one resource-SKU catalog entry shaped for a single queried region:
// Zones and ZoneCapabilities are extracted from the entry's location-info
// for that region, and Restricted reflects whether a restriction applies
// there.
type SKU struct {
	Name             string              `json:"name"`
	Tier             string              `json:"tier,omitempty"`
	ResourceType     string              `json:"resource_type,omitempty"`
	Size             string              `json:"size,omitempty"`
	Family           string              `json:"family,omitempty"`
	Locations        []string            `json:"locations,omitempty"`
	Restricted       bool                `json:"restricted"`
	Capabilities     map[string]string   `json:"capabilities,omitempty"`
	Zones            []string            `json:"zones,omitempty"`
	ZoneCapabilities []map[string]string `json:"zone_capabilities,omitempty"`
}

// ResourceTypeFootprint is the declared regional footprint of a provider
// resource type.
type ResourceTypeFootprint struct {
	ResourceType string   `json:"resource_type"`
	Locations    []string `json:"locations"`
	APIVersions  []string `json:"api_versions,omitempty"`
}

// Availability is the generic resource-type availability verdict.
type Availability struct {
	Available bool     `json:"available"`
	Reason    string   `json:"reason,omitempty"`
	Provider  string   `json:"provider"`
	Type      string   `json:"type"`
	Locations []string `json:"locations,omitempty"`
}

// SKUOption is one SKU/size choice for a resource type, with a short
// human-readable detail.
type SKUOption struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

// TriState is the verdict of a probe that can be positive, negative or
// indeterminate. Available is nil when indeterminate.
type TriState struct {
	Available *bool  `json:"available"`
	Details   string `json:"details,omitempty"`
}
