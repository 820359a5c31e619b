package emit

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/sublee/caseval/internal/caseval/expand"
)

// Plan describes the accessors of a package without generating them.
type Plan struct {
	Package   string         `yaml:"package"`
	Accessors []PlanAccessor `yaml:"accessors"`
}

type PlanAccessor struct {
	Name     string    `yaml:"name"`
	SumType  string    `yaml:"sumType"`
	Property string    `yaml:"property"`
	Returns  string    `yaml:"returns"`
	Kind     string    `yaml:"kind"`
	Default  string    `yaml:"default,omitempty"`
	Arms     []PlanArm `yaml:"arms"`
}

type PlanArm struct {
	Variant string `yaml:"variant"`
	Kind    string `yaml:"kind"`
	Slot    string `yaml:"slot,omitempty"`
	Binding string `yaml:"binding,omitempty"`
	Promote bool   `yaml:"promote,omitempty"`
	Value   string `yaml:"value,omitempty"`
}

// NewPlan describes accessors of the package pkgPath.
func NewPlan(pkgPath string, accs []*expand.Accessor) Plan {
	plan := Plan{Package: pkgPath, Accessors: make([]PlanAccessor, 0, len(accs))}
	for _, acc := range accs {
		pa := PlanAccessor{
			Name:     acc.Name,
			SumType:  acc.SumType,
			Property: acc.Property,
			Returns:  acc.ReturnType.Name,
			Kind:     acc.Strategy.String(),
			Arms:     make([]PlanArm, 0, len(acc.Arms)),
		}
		if acc.Default != nil {
			pa.Default = acc.Default.Text
		}

		for _, arm := range acc.Arms {
			a := PlanArm{Variant: arm.Variant.Name, Kind: arm.Kind.String()}
			switch arm.Kind {
			case expand.Bind:
				a.Slot = slotName(arm)
				a.Binding = arm.Binding
				a.Promote = arm.Promote
			default:
				a.Value = arm.Value.Text
			}
			pa.Arms = append(pa.Arms, a)
		}

		plan.Accessors = append(plan.Accessors, pa)
	}
	return plan
}

// slotName names the slot read by a Bind arm: its label, or its type for an
// unlabelled slot.
func slotName(arm expand.Arm) string {
	if arm.Slot.Label != "" {
		return arm.Slot.Label
	}
	return "(" + arm.Slot.Type.Name + ")"
}

// WritePlans writes plans as a YAML sequence.
func WritePlans(w io.Writer, plans []Plan) error {
	if plans == nil {
		plans = []Plan{}
	}
	out, err := yaml.MarshalWithOptions(plans, yaml.IndentSequence(true))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
