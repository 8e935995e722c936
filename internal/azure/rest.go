package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

const (
	// DefaultARMEndpoint is the public Azure Resource Manager endpoint.
	DefaultARMEndpoint = "https://management.azure.com"

	// armScope is the token scope for ARM calls.
	armScope = "https://management.azure.com/.default"

	// locationsAPIVersion is the subscriptions API version that includes
	// availabilityZoneMappings in the locations payload.
	locationsAPIVersion = "2022-12-01"

	// defaultSKUsAPIVersion is used for provider SKU catalogs without a
	// pinned version.
	defaultSKUsAPIVersion = "2021-10-01"
)

// skuAPIVersions pins the SKU catalog API version for providers that reject
// the default.
var skuAPIVersions = map[string]string{
	"microsoft.storage":           "2023-01-01",
	"microsoft.cognitiveservices": "2023-05-01",
	"microsoft.web":               "2022-03-01",
}

// restClient issues bearer-token ARM calls for the endpoints the SDK does
// not cover: region zone mappings and loosely-typed provider SKU catalogs.
type restClient struct {
	endpoint   string
	cred       azcore.TokenCredential
	httpClient *http.Client
}

func newRESTClient(cred azcore.TokenCredential, endpoint string) *restClient {
	return &restClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		cred:     cred,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// get fetches url with a bearer token and returns the response body.
func (c *restClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	token, err := c.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{armScope}})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire ARM token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ARM request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ARM returned status %d for %s", resp.StatusCode, req.URL.Path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// zone-mapping wire shape

type locationsResponse struct {
	Value []struct {
		Name                     string `json:"name"`
		DisplayName              string `json:"displayName"`
		AvailabilityZoneMappings []struct {
			LogicalZone  string `json:"logicalZone"`
			PhysicalZone string `json:"physicalZone"`
		} `json:"availabilityZoneMappings"`
	} `json:"value"`
}

func (c *restClient) zoneMappedLocations(ctx context.Context, subscriptionID string) ([]ZoneMappedLocation, error) {
	url := fmt.Sprintf("%s/subscriptions/%s/locations?api-version=%s", c.endpoint, subscriptionID, locationsAPIVersion)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp locationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse locations response: %w", err)
	}

	out := make([]ZoneMappedLocation, 0, len(resp.Value))
	for _, l := range resp.Value {
		loc := ZoneMappedLocation{
			Name:        l.Name,
			DisplayName: l.DisplayName,
		}
		for _, m := range l.AvailabilityZoneMappings {
			loc.ZoneMappings = append(loc.ZoneMappings, ZoneMapping{
				LogicalZone:  m.LogicalZone,
				PhysicalZone: m.PhysicalZone,
			})
		}
		out = append(out, loc)
	}
	return out, nil
}

// provider SKU catalog wire shape
//
// These payloads are not uniform across providers: the resource type may
// appear as "resourceType" or "resource_type", and locations either as a
// flat "locations" list or nested under "locationInfo". rawNamespaceSKU
// absorbs every observed spelling; toNamespaceSKU reconciles them once.

type rawNamespaceSKU struct {
	Name            string `json:"name"`
	Tier            string `json:"tier"`
	Kind            string `json:"kind"`
	ResourceType    string `json:"resourceType"`
	ResourceTypeAlt string `json:"resource_type"`
	Locations       []string `json:"locations"`
	LocationInfo    []struct {
		Location string `json:"location"`
	} `json:"locationInfo"`
}

func (r rawNamespaceSKU) toNamespaceSKU() NamespaceSKU {
	sku := NamespaceSKU{
		Name:         r.Name,
		Tier:         r.Tier,
		Kind:         r.Kind,
		ResourceType: r.ResourceType,
		Locations:    r.Locations,
	}
	if sku.ResourceType == "" {
		sku.ResourceType = r.ResourceTypeAlt
	}
	if len(sku.Locations) == 0 {
		for _, li := range r.LocationInfo {
			if li.Location != "" {
				sku.Locations = append(sku.Locations, li.Location)
			}
		}
	}
	return sku
}

type namespaceSKUsResponse struct {
	Value []rawNamespaceSKU `json:"value"`
}

func (c *restClient) namespaceSKUs(ctx context.Context, subscriptionID, namespace string) ([]NamespaceSKU, error) {
	apiVersion := defaultSKUsAPIVersion
	if v, ok := skuAPIVersions[strings.ToLower(namespace)]; ok {
		apiVersion = v
	}
	url := fmt.Sprintf("%s/subscriptions/%s/providers/%s/skus?api-version=%s", c.endpoint, subscriptionID, namespace, apiVersion)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp namespaceSKUsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse %s sku response: %w", namespace, err)
	}

	out := make([]NamespaceSKU, 0, len(resp.Value))
	for _, raw := range resp.Value {
		out = append(out, raw.toNamespaceSKU())
	}
	return out, nil
}
