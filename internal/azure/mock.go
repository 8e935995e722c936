package azure

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAPI is a testify mock of the API interface, shared by resolver and
// validator tests.
type MockAPI struct {
	mock.Mock
}

var _ API = (*MockAPI)(nil)

func (m *MockAPI) Subscriptions(ctx context.Context) ([]Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Subscription), args.Error(1)
}

func (m *MockAPI) Locations(ctx context.Context, subscriptionID string) ([]Location, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Location), args.Error(1)
}

func (m *MockAPI) ZoneMappedLocations(ctx context.Context, subscriptionID string) ([]ZoneMappedLocation, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ZoneMappedLocation), args.Error(1)
}

func (m *MockAPI) InstanceSizes(ctx context.Context, region, subscriptionID string) ([]InstanceSize, error) {
	args := m.Called(ctx, region, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]InstanceSize), args.Error(1)
}

func (m *MockAPI) ResourceSKUs(ctx context.Context, region, subscriptionID string) ([]ResourceSKU, error) {
	args := m.Called(ctx, region, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ResourceSKU), args.Error(1)
}

func (m *MockAPI) ProviderResourceTypes(ctx context.Context, namespace, subscriptionID string) ([]ResourceTypeInfo, error) {
	args := m.Called(ctx, namespace, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ResourceTypeInfo), args.Error(1)
}

func (m *MockAPI) NamespaceSKUs(ctx context.Context, namespace, subscriptionID string) ([]NamespaceSKU, error) {
	args := m.Called(ctx, namespace, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]NamespaceSKU), args.Error(1)
}

func (m *MockAPI) CheckCognitiveSKUs(ctx context.Context, region, subscriptionID, kind, resourceType string, skuNames []string) ([]SKUAvailability, error) {
	args := m.Called(ctx, region, subscriptionID, kind, resourceType, skuNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SKUAvailability), args.Error(1)
}

func (m *MockAPI) Usages(ctx context.Context, region, subscriptionID string) ([]Usage, error) {
	args := m.Called(ctx, region, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Usage), args.Error(1)
}
