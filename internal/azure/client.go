// Package azure wraps the ARM management plane behind a narrow interface so
// the resolver and validators can be tested against a mock.
package azure

import (
	"context"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// API is the catalog surface the resolver consumes. All methods issue
// blocking network calls; cancellation and timeouts belong to the caller's
// context.
type API interface {
	// Subscriptions lists the subscriptions visible to the credential.
	Subscriptions(ctx context.Context) ([]Subscription, error)

	// Locations lists the regions of a subscription.
	Locations(ctx context.Context, subscriptionID string) ([]Location, error)

	// ZoneMappedLocations lists regions together with their
	// logical-to-physical availability zone mappings.
	ZoneMappedLocations(ctx context.Context, subscriptionID string) ([]ZoneMappedLocation, error)

	// InstanceSizes lists the VM sizes offered in a region.
	InstanceSizes(ctx context.Context, region, subscriptionID string) ([]InstanceSize, error)

	// ResourceSKUs lists the compute resource-SKU catalog, server-filtered
	// to region when region is non-empty.
	ResourceSKUs(ctx context.Context, region, subscriptionID string) ([]ResourceSKU, error)

	// ProviderResourceTypes lists every resource type under a provider
	// namespace with its declared locations.
	ProviderResourceTypes(ctx context.Context, namespace, subscriptionID string) ([]ResourceTypeInfo, error)

	// NamespaceSKUs lists a provider-wide SKU catalog. Providers without a
	// SKU endpoint return an error.
	NamespaceSKUs(ctx context.Context, namespace, subscriptionID string) ([]NamespaceSKU, error)

	// CheckCognitiveSKUs probes per-SKU availability of a cognitive
	// services offering in a region.
	CheckCognitiveSKUs(ctx context.Context, region, subscriptionID, kind, resourceType string, skuNames []string) ([]SKUAvailability, error)

	// Usages lists compute quota/usage records for a region.
	Usages(ctx context.Context, region, subscriptionID string) ([]Usage, error)
}

// Client is the production API implementation over the ARM SDK plus a raw
// REST client for the endpoints the SDK does not shape usefully.
type Client struct {
	cred     azcore.TokenCredential
	endpoint string
	rest     *restClient
	logger   *slog.Logger
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithCredential supplies a token credential, replacing the default
// credential chain.
func WithCredential(cred azcore.TokenCredential) Option {
	return func(c *Client) {
		c.cred = cred
	}
}

// WithEndpoint points the raw REST calls at a custom ARM endpoint. Used by
// tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient builds a Client. Without WithCredential it acquires the default
// credential chain (CLI login, managed identity, environment variables).
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	if c.cred == nil {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, err
		}
		c.cred = cred
	}
	if c.endpoint == "" {
		c.endpoint = DefaultARMEndpoint
	}
	c.rest = newRESTClient(c.cred, c.endpoint)
	return c, nil
}
