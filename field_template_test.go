package gmsec

import "testing"

func newTestFieldTemplate(name string, mode FieldMode, types []TypeTag) *FieldTemplate {
	return &FieldTemplate{name: name, modifiedName: name, class: ClassStandard, mode: mode, types: types}
}

func TestDependencyEqualsOverridesMode(t *testing.T) {
	dependent := newTestFieldTemplate("COUNTER", ModeOptional, []TypeTag{TypeI32})
	required := ModeRequired
	dependent.dependencies = []*Dependency{
		{Name: "PUB-RATE", EqualsValue: strPtr("30"), UseOverride: &required},
	}

	msg := NewMessage("test.subject", KindPublish)
	msg.AddField(NewI16Field("PUB-RATE", 30))

	eff := dependent.Apply(msg)
	if eff.Mode != ModeRequired {
		t.Fatalf("Apply().Mode = %v, want REQUIRED when PUB-RATE == 30", eff.Mode)
	}

	msg2 := NewMessage("test.subject", KindPublish)
	msg2.AddField(NewI16Field("PUB-RATE", 1))
	eff2 := dependent.Apply(msg2)
	if eff2.Mode != ModeOptional {
		t.Fatalf("Apply().Mode = %v, want OPTIONAL when PUB-RATE != 30", eff2.Mode)
	}
}

func TestDependencyInactiveWhenFieldAbsent(t *testing.T) {
	required := ModeRequired
	dependent := newTestFieldTemplate("COUNTER", ModeOptional, []TypeTag{TypeI32})
	dependent.dependencies = []*Dependency{
		{Name: "PUB-RATE", UseOverride: &required},
	}
	msg := NewMessage("test.subject", KindPublish)
	eff := dependent.Apply(msg)
	if eff.Mode != ModeOptional {
		t.Fatalf("Apply().Mode = %v, want OPTIONAL when dependency field is absent", eff.Mode)
	}
}

func TestExpandControlFieldPrefixesChildren(t *testing.T) {
	child := newTestFieldTemplate("COMPONENT-STATUS", ModeRequired, []TypeTag{TypeString})
	control := &FieldTemplate{
		name: "COMPONENT-STATUS.1", modifiedName: "COMPONENT-STATUS.1",
		class: ClassControl, prefix: "COMPONENT-STATUS-REF", children: []*FieldTemplate{child},
	}

	expanded := expandControlField(control)
	if len(expanded) != 1 {
		t.Fatalf("expandControlField returned %d fields, want 1", len(expanded))
	}
	if got := expanded[0].ModifiedName(); got != "COMPONENT-STATUS-REF.COMPONENT-STATUS" {
		t.Fatalf("expanded child ModifiedName() = %q", got)
	}
}

func strPtr(s string) *string { return &s }
