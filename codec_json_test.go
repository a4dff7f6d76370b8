package gmsec

import "testing"

func TestToJSONAndMessageFromJSONRoundTrip(t *testing.T) {
	spec := testSpecification(t)
	factory := NewMessageFactory(spec, nil)
	msg := newValidLogMessage(t, spec)

	out, err := ToJSON(msg)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	parsed, err := MessageFromJSON(factory, []byte(out))
	if err != nil {
		t.Fatalf("MessageFromJSON: %v", err)
	}
	if parsed.SchemaID() != msg.SchemaID() {
		t.Fatalf("SchemaID() = %q, want %q", parsed.SchemaID(), msg.SchemaID())
	}
	v, ok := parsed.GetFieldValue("MISSION-ID")
	if !ok || v != "SAT1" {
		t.Fatalf("GetFieldValue(MISSION-ID) = %q, %v", v, ok)
	}

	status := Validate(spec, parsed, false)
	if !status.OK() {
		t.Fatalf("round-tripped message failed validation: %s", status.Reason())
	}
}

func TestMessageFromJSONRejectsMalformedDocument(t *testing.T) {
	spec := testSpecification(t)
	factory := NewMessageFactory(spec, nil)
	if _, err := MessageFromJSON(factory, []byte("{not json")); err == nil {
		t.Fatal("expected an error parsing a malformed JSON message")
	}
}
