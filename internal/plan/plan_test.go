package plan

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func validPlan() Plan {
	return Plan{
		Region: "westeurope",
		Resources: []Resource{
			{ResourceType: "Microsoft.Compute/virtualMachines", SKU: "Standard_D2s_v5"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Plan)
		wantErr bool
	}{
		{"valid", func(*Plan) {}, false},
		{"missing region", func(p *Plan) { p.Region = "" }, true},
		{"no resources", func(p *Plan) { p.Resources = nil }, true},
		{"empty resources", func(p *Plan) { p.Resources = []Resource{} }, true},
		{"missing resource type", func(p *Plan) { p.Resources[0].ResourceType = "" }, true},
		{"malformed resource type", func(p *Plan) { p.Resources[0].ResourceType = "virtualMachines" }, true},
		{"zero quantity allowed", func(p *Plan) { p.Resources[0].Quantity = 0 }, false},
		{"explicit quantity", func(p *Plan) { p.Resources[0].Quantity = 3 }, false},
		{"negative quantity", func(p *Plan) { p.Resources[0].Quantity = -1 }, true},
		{"sku optional", func(p *Plan) { p.Resources[0].SKU = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPlan()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				require.Error(t, err)
				var verrs validator.ValidationErrors
				assert.True(t, errors.As(err, &verrs), "structural failures must expose field errors")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	p := Plan{
		Region: "westeurope",
		Resources: []Resource{
			{ResourceType: "Microsoft.Compute/disks"},
			{ResourceType: "Microsoft.Compute/disks", Quantity: 4},
		},
	}
	p.Normalize()
	assert.Equal(t, 1, p.Resources[0].Quantity)
	assert.Equal(t, 4, p.Resources[1].Quantity)
}

func TestPlanDecoding(t *testing.T) {
	const asJSON = `{
		"region": "westeurope",
		"subscription_id": "sub-1",
		"resources": [
			{"resource_type": "Microsoft.Compute/virtualMachines", "sku": "Standard_D4s_v5",
			 "zones": ["1", "2"], "features": {"UltraSSDAvailable": "True"}, "quantity": 2}
		]
	}`
	var fromJSON Plan
	require.NoError(t, json.Unmarshal([]byte(asJSON), &fromJSON))

	const asYAML = `
region: westeurope
subscription_id: sub-1
resources:
  - resource_type: Microsoft.Compute/virtualMachines
    sku: Standard_D4s_v5
    zones: ["1", "2"]
    features:
      UltraSSDAvailable: "True"
    quantity: 2
`
	var fromYAML Plan
	require.NoError(t, yaml.Unmarshal([]byte(asYAML), &fromYAML))

	assert.Equal(t, fromJSON, fromYAML, "both encodings share the wire names")
	assert.Equal(t, "sub-1", fromJSON.SubscriptionID)
	assert.Equal(t, []string{"1", "2"}, fromJSON.Resources[0].Zones)
	assert.Equal(t, "True", fromJSON.Resources[0].Features["UltraSSDAvailable"])
}

func TestResponseEncoding(t *testing.T) {
	resp := Response{
		Region:         "westeurope",
		SubscriptionID: "sub-1",
		Results: []ResultItem{
			{
				Resource: Resource{ResourceType: "Microsoft.Compute/disks", SKU: "Premium_LRS", Quantity: 1},
				Status:   StatusAvailable,
				Details:  "Available.",
			},
		},
		ZoneMapping: []ZoneMapping{{LogicalZone: "1", PhysicalZone: "westeurope-az3"}},
	}
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	s := string(raw)
	assert.Contains(t, s, `"status":"available"`)
	assert.Contains(t, s, `"resource_type":"Microsoft.Compute/disks"`)
	assert.Contains(t, s, `"zone_mapping"`)
	assert.Contains(t, s, `"logicalZone":"1"`)
	assert.Contains(t, s, `"physicalZone":"westeurope-az3"`)
}
