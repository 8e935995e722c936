// Package plan defines the deployment plan wire model and its structural
// validation. Semantic validation (catalog lookups) lives in internal/validate.
package plan

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Status classifies one validation verdict.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusUnknown     Status = "unknown"
)

// Resource is one requested resource in a plan.
type Resource struct {
	ResourceType string         `json:"resource_type" yaml:"resource_type" validate:"required,resource_type"`
	SKU          string         `json:"sku,omitempty" yaml:"sku,omitempty"`
	Zones        []string       `json:"zones,omitempty" yaml:"zones,omitempty"`
	Features     map[string]any `json:"features,omitempty" yaml:"features,omitempty"`
	Quantity     int            `json:"quantity,omitempty" yaml:"quantity,omitempty" validate:"omitempty,min=1"`
}

// Plan is a set of resources to validate against one region.
type Plan struct {
	SubscriptionID string     `json:"subscription_id,omitempty" yaml:"subscription_id,omitempty"`
	Region         string     `json:"region" yaml:"region" validate:"required"`
	Resources      []Resource `json:"resources" yaml:"resources" validate:"required,min=1,dive"`
}

// ResultItem is the verdict for one plan resource. The resource is echoed
// back so results stay meaningful without the request at hand.
type ResultItem struct {
	Resource   Resource `json:"resource" yaml:"resource"`
	Status     Status   `json:"status" yaml:"status"`
	Details    string   `json:"details,omitempty" yaml:"details,omitempty"`
	References []string `json:"references,omitempty" yaml:"references,omitempty"`
}

// ZoneMapping is one logical-to-physical availability zone pair. Physical
// zone names are specific to the subscription.
type ZoneMapping struct {
	LogicalZone  string `json:"logicalZone" yaml:"logicalZone"`
	PhysicalZone string `json:"physicalZone" yaml:"physicalZone"`
}

// Response is the outcome of validating a plan, results in input order.
type Response struct {
	Region         string        `json:"region" yaml:"region"`
	SubscriptionID string        `json:"subscription_id,omitempty" yaml:"subscription_id,omitempty"`
	Results        []ResultItem  `json:"results" yaml:"results"`
	ZoneMapping    []ZoneMapping `json:"zone_mapping,omitempty" yaml:"zone_mapping,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// resource_type must look like "Namespace/Type".
	must(v.RegisterValidation("resource_type", func(fl validator.FieldLevel) bool {
		ns, typ, ok := strings.Cut(fl.Field().String(), "/")
		return ok && ns != "" && typ != ""
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate checks the plan's structure. The returned error wraps
// validator.ValidationErrors so transports can map it to a client error.
func (p *Plan) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}
	return nil
}

// Normalize fills defaults in place. Quantity defaults to 1.
func (p *Plan) Normalize() {
	for i := range p.Resources {
		if p.Resources[i].Quantity == 0 {
			p.Resources[i].Quantity = 1
		}
	}
}
