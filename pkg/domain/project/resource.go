package project

import "fmt"

type ResourceType string

const (
	ResourceWork      ResourceType = "work"
	ResourceMaterial  ResourceType = "material"
	ResourceEquipment ResourceType = "equipment"
	ResourceCost      ResourceType = "cost"
)

// Resource is a reusable cost-rate unit referenced by task assignments.
type Resource struct {
	ID       string       `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Type     ResourceType `json:"type" yaml:"type"`
	Unit     string       `json:"unit,omitempty" yaml:"unit,omitempty"`
	CostRate float64      `json:"cost_rate" yaml:"cost_rate"`
	Currency string       `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// NewResource creates a validated Resource.
func NewResource(id, name string, rtype ResourceType, unit string, costRate float64) (Resource, error) {
	if id == "" {
		return Resource{}, fmt.Errorf("resource ID must not be empty")
	}
	if name == "" {
		return Resource{}, fmt.Errorf("resource name must not be empty")
	}
	if costRate < 0 {
		return Resource{}, fmt.Errorf("cost rate must be >= 0")
	}
	if rtype == "" {
		rtype = ResourceMaterial
	}
	return Resource{
		ID:       id,
		Name:     name,
		Type:     rtype,
		Unit:     unit,
		CostRate: costRate,
	}, nil
}

// ResourceAssignment links a task to a resource with a planned quantity.
// The referenced resource may no longer exist; cost resolution treats a
// dangling reference as zero cost rather than an error.
type ResourceAssignment struct {
	ResourceID     string  `json:"resource_id" yaml:"resource_id"`
	Quantity       float64 `json:"quantity" yaml:"quantity"`
	ActualQuantity float64 `json:"actual_quantity,omitempty" yaml:"actual_quantity,omitempty"`
}
