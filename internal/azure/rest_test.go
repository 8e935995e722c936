package azure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticCredential returns a fixed token without network access.
type staticCredential struct {
	token string
}

func (s staticCredential) GetToken(_ context.Context, _ policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: s.token, ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func TestZoneMappedLocations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Error("missing or invalid Authorization header")
		}
		assert.Equal(t, "/subscriptions/sub-1/locations", r.URL.Path)
		assert.Equal(t, locationsAPIVersion, r.URL.Query().Get("api-version"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"value": [
				{
					"name": "westeurope",
					"displayName": "West Europe",
					"availabilityZoneMappings": [
						{"logicalZone": "1", "physicalZone": "westeurope-az1"},
						{"logicalZone": "2", "physicalZone": "westeurope-az3"}
					]
				},
				{"name": "westcentralus", "displayName": "West Central US"}
			]
		}`))
	}))
	defer server.Close()

	c := newRESTClient(staticCredential{token: "test-token"}, server.URL)
	locs, err := c.zoneMappedLocations(context.Background(), "sub-1")
	require.NoError(t, err)
	require.Len(t, locs, 2)

	assert.Equal(t, "westeurope", locs[0].Name)
	require.Len(t, locs[0].ZoneMappings, 2)
	assert.Equal(t, "1", locs[0].ZoneMappings[0].LogicalZone)
	assert.Equal(t, "westeurope-az1", locs[0].ZoneMappings[0].PhysicalZone)

	assert.Empty(t, locs[1].ZoneMappings, "regions without zones carry no mappings")
}

func TestNamespaceSKUs_AlternateKeySpellings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subscriptions/sub-1/providers/Microsoft.Storage/skus", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"value": [
				{
					"name": "Standard_LRS",
					"tier": "Standard",
					"resourceType": "storageAccounts",
					"locations": ["westeurope", "northeurope"]
				},
				{
					"name": "Premium_LRS",
					"resource_type": "storageAccounts",
					"locationInfo": [{"location": "westeurope"}]
				},
				{
					"name": "GlobalThing"
				}
			]
		}`))
	}))
	defer server.Close()

	c := newRESTClient(staticCredential{token: "t"}, server.URL)
	skus, err := c.namespaceSKUs(context.Background(), "sub-1", "Microsoft.Storage")
	require.NoError(t, err)
	require.Len(t, skus, 3)

	assert.Equal(t, "storageAccounts", skus[0].ResourceType)
	assert.Equal(t, []string{"westeurope", "northeurope"}, skus[0].Locations)

	// Snake-case type and nested locationInfo are reconciled at ingestion.
	assert.Equal(t, "storageAccounts", skus[1].ResourceType)
	assert.Equal(t, []string{"westeurope"}, skus[1].Locations)

	assert.Empty(t, skus[2].ResourceType)
	assert.Empty(t, skus[2].Locations)
}

func TestNamespaceSKUs_PinnedAPIVersion(t *testing.T) {
	var gotVersion string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.URL.Query().Get("api-version")
		_, _ = w.Write([]byte(`{"value": []}`))
	}))
	defer server.Close()

	c := newRESTClient(staticCredential{token: "t"}, server.URL)
	_, err := c.namespaceSKUs(context.Background(), "sub-1", "Microsoft.Storage")
	require.NoError(t, err)
	assert.Equal(t, skuAPIVersions["microsoft.storage"], gotVersion)

	_, err = c.namespaceSKUs(context.Background(), "sub-1", "Microsoft.SomethingElse")
	require.NoError(t, err)
	assert.Equal(t, defaultSKUsAPIVersion, gotVersion)
}

func TestRESTClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := newRESTClient(staticCredential{token: "t"}, server.URL)
	_, err := c.zoneMappedLocations(context.Background(), "sub-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
