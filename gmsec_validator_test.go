package gmsec

import "testing"

func newValidLogMessage(t *testing.T, spec *Specification) *Message {
	t.Helper()
	factory := NewMessageFactory(spec, nil)
	msg, err := factory.CreateMessage("MSG.LOG")
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	// MESSAGE-TYPE and MESSAGE-SUBTYPE are populated automatically by
	// CreateMessage's header substitution (spec.md §4.5).
	msg.AddField(NewStringField("MISSION-ID", "SAT1"))
	msg.AddField(NewI16Field("SEVERITY", 2))
	msg.AddField(NewStringField("OCCURRENCE-TIME", "2026-210T12:00:00"))
	msg.AddField(NewStringField("MSG-TEXT", "engine nominal"))
	return msg
}

func TestValidateAcceptsWellFormedMessage(t *testing.T) {
	spec := testSpecification(t)
	msg := newValidLogMessage(t, spec)

	status := Validate(spec, msg, false)
	if !status.OK() {
		t.Fatalf("expected valid message, got: %s", status.Reason())
	}
}

func TestValidateReportsMissingRequiredField(t *testing.T) {
	spec := testSpecification(t)
	msg := newValidLogMessage(t, spec)
	msg.ClearField("SEVERITY")

	status := Validate(spec, msg, false)
	if status.OK() {
		t.Fatal("expected a violation for the missing SEVERITY field")
	}
	found := false
	for _, d := range status.Details {
		if d.Field == "SEVERITY" && d.Code == CodeMissingRequiredField {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected MISSING_REQUIRED_FIELD for SEVERITY, got: %+v", status.Details)
	}
}

func TestValidateRejectsEnumerationViolation(t *testing.T) {
	spec := testSpecification(t)
	msg := newValidLogMessage(t, spec)
	msg.ClearField("SEVERITY")
	msg.AddField(NewI16Field("SEVERITY", 99))

	status := Validate(spec, msg, false)
	if status.OK() {
		t.Fatal("expected a violation for an out-of-enumeration SEVERITY value")
	}
}

func TestValidateRejectsUnrecognizedFieldOnlyWhenStrict(t *testing.T) {
	spec := testSpecification(t)
	msg := newValidLogMessage(t, spec)
	msg.AddField(NewStringField("UNKNOWN-FIELD", "x"))

	if status := Validate(spec, msg, false); !status.OK() {
		t.Fatalf("non-strict validation should accept unrecognized fields, got: %s", status.Reason())
	}
	status := Validate(spec, msg, true)
	if status.OK() {
		t.Fatal("strict validation should reject an unrecognized field")
	}
}

func TestValidateDependencyRequiresCounterWhenPubRatePositive(t *testing.T) {
	spec := testSpecification(t)
	factory := NewMessageFactory(spec, nil)
	msg, err := factory.CreateMessage("MSG.HB")
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	msg.AddField(NewI16Field("PUB-RATE", 30))
	msg.AddField(NewStringField("COMPONENT-STATUS-REF.COMPONENT-STATUS", "GREEN"))

	status := Validate(spec, msg, false)
	found := false
	for _, d := range status.Details {
		if d.Field == "COUNTER" && d.Code == CodeMissingRequiredField {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected COUNTER to become required once PUB-RATE > 0, got: %+v", status.Details)
	}
}

func TestValidateComposesSchemaIDWhenNoneIsBound(t *testing.T) {
	spec := testSpecification(t)
	msg := NewMessage("", KindPublish)
	msg.AddField(NewStringField("MESSAGE-TYPE", "MSG"))
	msg.AddField(NewStringField("MESSAGE-SUBTYPE", "LOG"))
	msg.AddField(NewStringField("MISSION-ID", "SAT1"))
	msg.AddField(NewI16Field("SEVERITY", 2))
	msg.AddField(NewStringField("OCCURRENCE-TIME", "2026-210T12:00:00"))
	msg.AddField(NewStringField("MSG-TEXT", "engine nominal"))

	status := Validate(spec, msg, false)
	if !status.OK() {
		t.Fatalf("expected a message with no bound schema ID to validate via composed MSG.LOG: %s", status.Reason())
	}
}

func TestValidateFieldRejectsOutOfRangeUnsignedValue(t *testing.T) {
	ft := newTestFieldTemplate("COUNT", ModeRequired, []TypeTag{TypeU16})
	msg := NewMessage("test.subject", KindPublish)
	if err := msg.AddField(Field{Name: "COUNT", Type: TypeU16, u: 70000}); err != nil {
		t.Fatalf("AddField: %v", err)
	}

	status := newOKStatus()
	validateField(status, msg, ft)
	if status.OK() {
		t.Fatal("expected U16 = 70000 to be rejected as out of range")
	}
	found := false
	for _, d := range status.Details {
		if d.Field == "COUNT" && d.Code == CodeInvalidFieldValue {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected INVALID_FIELD_VALUE for COUNT, got: %+v", status.Details)
	}
}

func TestValidateFieldAcceptsInRangeUnsignedValue(t *testing.T) {
	ft := newTestFieldTemplate("COUNT", ModeRequired, []TypeTag{TypeU16})
	msg := NewMessage("test.subject", KindPublish)
	if err := msg.AddField(NewU16Field("COUNT", 60000)); err != nil {
		t.Fatalf("AddField: %v", err)
	}

	status := newOKStatus()
	validateField(status, msg, ft)
	if !status.OK() {
		t.Fatalf("expected an in-range U16 value to be accepted, got: %s", status.Reason())
	}
}

func TestValidateFieldRejectsOutOfRangeSignedValue(t *testing.T) {
	ft := newTestFieldTemplate("LEVEL", ModeRequired, []TypeTag{TypeI8})
	msg := NewMessage("test.subject", KindPublish)
	if err := msg.AddField(Field{Name: "LEVEL", Type: TypeI8, i: 200}); err != nil {
		t.Fatalf("AddField: %v", err)
	}

	status := newOKStatus()
	validateField(status, msg, ft)
	if status.OK() {
		t.Fatal("expected I8 = 200 to be rejected as out of range")
	}
}
