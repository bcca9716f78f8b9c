// Package project holds the records a construction project is made of:
// scheduled tasks, cost-rate resources, and the project document that binds
// them together with its contractual details.
package project

import "fmt"

type StructureType string

const (
	StructureConcrete StructureType = "concrete"
	StructureMetal    StructureType = "metal"
	StructureMixed    StructureType = "mixed"
)

// Dimensions describes the physical scope of the build.
type Dimensions struct {
	LandArea           float64       `json:"land_area" yaml:"land_area"`
	InfrastructureArea float64       `json:"infrastructure_area" yaml:"infrastructure_area"`
	OccupationArea     float64       `json:"occupation_area" yaml:"occupation_area"`
	Floors             int           `json:"floors" yaml:"floors"`
	StructureType      StructureType `json:"structure_type" yaml:"structure_type"`
	Units              int           `json:"units" yaml:"units"`
}

type Location struct {
	Address            string `json:"address" yaml:"address"`
	ZoneType           string `json:"zone_type,omitempty" yaml:"zone_type,omitempty"`
	AccessRestrictions string `json:"access_restrictions,omitempty" yaml:"access_restrictions,omitempty"`
}

type DesignSpecs struct {
	MechanicalSystem string `json:"mechanical_system,omitempty" yaml:"mechanical_system,omitempty"`
	ElectricalSystem string `json:"electrical_system,omitempty" yaml:"electrical_system,omitempty"`
	FacadeType       string `json:"facade_type,omitempty" yaml:"facade_type,omitempty"`
	RoofType         string `json:"roof_type,omitempty" yaml:"roof_type,omitempty"`
}

type Contract struct {
	ContractNumber string `json:"contract_number,omitempty" yaml:"contract_number,omitempty"`
	StartDate      string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	DurationMonths int    `json:"duration_months,omitempty" yaml:"duration_months,omitempty"`
	PenaltyPolicy  string `json:"penalty_policy,omitempty" yaml:"penalty_policy,omitempty"`
}

type Financials struct {
	TotalBudget       float64 `json:"total_budget,omitempty" yaml:"total_budget,omitempty"`
	PaymentMethod     string  `json:"payment_method,omitempty" yaml:"payment_method,omitempty"`
	WorkshopEquipCost float64 `json:"workshop_equip_cost,omitempty" yaml:"workshop_equip_cost,omitempty"`
}

// Details groups the contractual and physical description of the build.
type Details struct {
	Dimensions       Dimensions  `json:"dimensions" yaml:"dimensions"`
	Location         Location    `json:"location" yaml:"location"`
	Design           DesignSpecs `json:"design" yaml:"design"`
	Contract         Contract    `json:"contract" yaml:"contract"`
	Contractor       string      `json:"contractor,omitempty" yaml:"contractor,omitempty"`
	Financials       Financials  `json:"financials" yaml:"financials"`
	Constraints      []string    `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	MaterialStrategy string      `json:"material_strategy,omitempty" yaml:"material_strategy,omitempty"`
}

type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is an advisor finding attached to the project.
type Alert struct {
	ID       string        `json:"id" yaml:"id"`
	Type     string        `json:"type" yaml:"type"` // "delay", "cost", "risk", "opportunity"
	Message  string        `json:"message" yaml:"message"`
	Severity AlertSeverity `json:"severity" yaml:"severity"`
	Date     string        `json:"date" yaml:"date"`
}

// Project is the root document: the task schedule, the resource pool, and
// the advisor state, persisted as a single record.
type Project struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Details     Details    `json:"details" yaml:"details"`
	Tasks       []Task     `json:"tasks" yaml:"tasks"`
	Resources   []Resource `json:"resources" yaml:"resources"`
	RiskScore   float64    `json:"risk_score,omitempty" yaml:"risk_score,omitempty"`
	Alerts      []Alert    `json:"alerts,omitempty" yaml:"alerts,omitempty"`
}

// TaskByID returns a pointer into the project's task slice, or nil.
func (p *Project) TaskByID(id string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i]
		}
	}
	return nil
}

// ResourceByID returns a pointer into the project's resource slice, or nil.
func (p *Project) ResourceByID(id string) *Resource {
	for i := range p.Resources {
		if p.Resources[i].ID == id {
			return &p.Resources[i]
		}
	}
	return nil
}

// RemoveTask deletes a task by ID.
func (p *Project) RemoveTask(id string) error {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "task", ID: id}
}

// RemoveResource deletes a resource by ID. Task assignments referencing it are
// left in place; cost resolution treats them as zero cost.
func (p *Project) RemoveResource(id string) error {
	for i := range p.Resources {
		if p.Resources[i].ID == id {
			p.Resources = append(p.Resources[:i], p.Resources[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "resource", ID: id}
}

func (p *Project) String() string {
	return fmt.Sprintf("%s (%d tasks, %d resources)", p.Name, len(p.Tasks), len(p.Resources))
}
