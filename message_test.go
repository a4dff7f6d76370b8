package gmsec

import "testing"

func TestMessageAddFieldPreservesInsertionOrder(t *testing.T) {
	msg := NewMessage("test.subject", KindPublish)
	msg.AddField(NewStringField("B", "2"))
	msg.AddField(NewStringField("A", "1"))
	msg.AddField(NewStringField("B", "overwritten"))

	names := msg.FieldNames()
	if len(names) != 2 || names[0] != "B" || names[1] != "A" {
		t.Fatalf("FieldNames() = %v, want [B A] (re-adding B keeps its original position)", names)
	}
	v, _ := msg.GetFieldValue("B")
	if v != "overwritten" {
		t.Fatalf("GetFieldValue(B) = %q, want %q", v, "overwritten")
	}
}

func TestMessageClearField(t *testing.T) {
	msg := NewMessage("test.subject", KindPublish)
	msg.AddField(NewStringField("A", "1"))
	if !msg.ClearField("A") {
		t.Fatal("ClearField(A) = false, want true")
	}
	if msg.HasField("A") {
		t.Fatal("field A still present after ClearField")
	}
	if msg.ClearField("A") {
		t.Fatal("ClearField(A) on an absent field should report false")
	}
}

func TestMessageSubjectElementSubstitution(t *testing.T) {
	msg := NewMessage("", KindPublish)
	msg.bindSubjectTemplate([]SubjectElement{
		{Name: "MISSION", DefaultValue: "FILL"},
		{Name: "CONSTELLATION-ID", DefaultValue: "FILL", Optional: true},
		{Name: "MSG-TYPE", DefaultValue: "MSG"},
	})
	if msg.Subject() != "FILL.FILL.MSG" {
		t.Fatalf("Subject() = %q, want FILL.FILL.MSG before any overrides", msg.Subject())
	}

	if err := msg.SetSubjectElement("MISSION", "SAT1"); err != nil {
		t.Fatalf("SetSubjectElement: %v", err)
	}
	if msg.Subject() != "SAT1.FILL.MSG" {
		t.Fatalf("Subject() = %q, want SAT1.FILL.MSG", msg.Subject())
	}

	if err := msg.SetSubjectElement("NOT-A-FIELD", "x"); err == nil {
		t.Fatal("SetSubjectElement on an unknown element should fail")
	}
}

func TestFieldIteratorSelector(t *testing.T) {
	msg := NewMessage("test.subject", KindPublish)
	msg.AddField(Field{Name: "HEADER-FIELD", Type: TypeString, IsHeader: true, s: "h"})
	msg.AddField(Field{Name: "BODY-FIELD", Type: TypeString, IsHeader: false, s: "b"})

	it := msg.FieldIterator(SelectHeaderOnly)
	f, ok := it.Next()
	if !ok || f.Name != "HEADER-FIELD" {
		t.Fatalf("SelectHeaderOnly first = %+v, %v", f, ok)
	}
	if _, ok := it.Next(); ok {
		t.Fatal("SelectHeaderOnly should yield exactly one field")
	}

	it2 := msg.FieldIterator(SelectNonHeader)
	f2, ok := it2.Next()
	if !ok || f2.Name != "BODY-FIELD" {
		t.Fatalf("SelectNonHeader first = %+v, %v", f2, ok)
	}
}

func TestAddFieldRejectsInvalidName(t *testing.T) {
	msg := NewMessage("test.subject", KindPublish)
	if err := msg.AddField(NewStringField("1BAD", "x")); err == nil {
		t.Fatal("AddField should reject a name starting with a digit")
	}
}
