package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"westeurope", "westeurope"},
		{"West Europe", "westeurope"},
		{"WEST-EUROPE", "westeurope"},
		{"(Europe) West Europe", "europewesteurope"},
		{"East US 2", "eastus2"},
		{"", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("West Europe", "westeurope"))
	assert.True(t, Equal("east-us-2", "East US 2"))
	assert.False(t, Equal("westeurope", "northeurope"))
}

func TestVariants_CodeToDisplayName(t *testing.T) {
	known := []Pair{
		{Code: "westeurope", DisplayName: "West Europe"},
		{Code: "northeurope", DisplayName: "North Europe"},
	}

	v := Variants("westeurope", known)
	assert.Contains(t, v, "westeurope")
	assert.NotContains(t, v, "northeurope")

	// Display name input resolves to the code as well.
	v = Variants("North Europe", known)
	assert.Contains(t, v, "northeurope")
}

func TestVariants_UnknownRegionKeepsInput(t *testing.T) {
	v := Variants("Mars Central", nil)
	assert.Equal(t, map[string]struct{}{"marscentral": {}}, v)
}

func TestMatches_AcrossNamingSchemes(t *testing.T) {
	known := []Pair{{Code: "westeurope", DisplayName: "West Europe"}}

	// A provider catalog listing display names matches a code-based request.
	assert.True(t, Matches("westeurope", "West Europe", known))
	// And the other way around.
	assert.True(t, Matches("West Europe", "westeurope", known))
	assert.False(t, Matches("westeurope", "East US", known))
}
