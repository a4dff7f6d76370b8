package gmsec

import "strings"

// FieldTemplate is the immutable contract for one field of a
// MessageTemplate (spec.md §3). It plays the role ElementDecl plays in the
// XSD engine this package is adapted from: a declarative description
// walked by a separate validator rather than carrying validation logic
// itself, except for dependency resolution (apply), which is intrinsic to
// the field's own contract.
type FieldTemplate struct {
	name         string
	modifiedName string
	class        FieldClass
	mode         FieldMode
	types        []TypeTag
	values       []string
	pattern      string
	description  string
	children     []*FieldTemplate
	prefix       string
	dependencies []*Dependency
}

// Dependency is a conditional override of a field's effective mode, types,
// and values, keyed on the runtime value of another field in the same
// message (spec.md §3).
type Dependency struct {
	Name           string
	EqualsValue    *string
	GreaterThan    *string
	LessThan       *string
	UseOverride    *FieldMode
	Pattern        string
	ValueOverrides []string
	TypeOverrides  []TypeTag
}

// EffectiveFieldTemplate is the mode/types/values/pattern a FieldTemplate
// resolves to once dependencies are applied against a concrete message
// (spec.md §4.3 "apply").
type EffectiveFieldTemplate struct {
	*FieldTemplate
	Mode    FieldMode
	Types   []TypeTag
	Values  []string
	Pattern string
}

func (ft *FieldTemplate) Name() string               { return ft.name }
func (ft *FieldTemplate) ModifiedName() string        { return ft.modifiedName }
func (ft *FieldTemplate) Class() FieldClass           { return ft.class }
func (ft *FieldTemplate) Mode() FieldMode             { return ft.mode }
func (ft *FieldTemplate) Description() string         { return ft.description }
func (ft *FieldTemplate) Pattern() string             { return ft.pattern }
func (ft *FieldTemplate) Children() []*FieldTemplate  { return ft.children }
func (ft *FieldTemplate) Dependencies() []*Dependency { return ft.dependencies }

// ConcatenatedTypes joins the field's permitted types with ",", mirroring
// the XSD engine's concatenatedTypes-style accessor used for diagnostics.
func (ft *FieldTemplate) ConcatenatedTypes() string {
	parts := make([]string, len(ft.types))
	for i, t := range ft.types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// ConcatenatedValues joins the field's permitted enumerated values with ",".
func (ft *FieldTemplate) ConcatenatedValues() string {
	return strings.Join(ft.values, ",")
}

// Apply resolves this field template's dependencies against msg's actual
// field values, returning the effective mode/types/values/pattern to
// validate against (spec.md §3 "Dependency", §4.6 step 2).
func (ft *FieldTemplate) Apply(msg *Message) EffectiveFieldTemplate {
	eff := EffectiveFieldTemplate{
		FieldTemplate: ft,
		Mode:          ft.mode,
		Types:         ft.types,
		Values:        ft.values,
		Pattern:       ft.pattern,
	}

	for _, dep := range ft.dependencies {
		other, ok := msg.GetField(dep.Name)
		if !ok {
			continue // dependency inactive; base rule applies (spec.md §8)
		}
		actual := other.StringForm()
		if !dep.matches(actual) {
			continue
		}
		if dep.UseOverride != nil {
			eff.Mode = *dep.UseOverride
		}
		if len(dep.TypeOverrides) > 0 {
			eff.Types = dep.TypeOverrides
		}
		if len(dep.ValueOverrides) > 0 {
			eff.Values = dep.ValueOverrides
		}
		if dep.Pattern != "" {
			eff.Pattern = dep.Pattern
		}
	}

	return eff
}

func (d *Dependency) matches(actual string) bool {
	if d.EqualsValue != nil {
		return actual == *d.EqualsValue
	}
	if d.GreaterThan != nil {
		return compareNumericStrings(actual, *d.GreaterThan) > 0
	}
	if d.LessThan != nil {
		return compareNumericStrings(actual, *d.LessThan) < 0
	}
	// A dependency naming only the field (no predicate) fires whenever the
	// field is present.
	return true
}

// compareNumericStrings compares a and b as floats when both parse as
// numbers, falling back to a lexical comparison otherwise.
func compareNumericStrings(a, b string) int {
	af, aerr := parseFloatLoose(a)
	bf, berr := parseFloatLoose(b)
	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}
