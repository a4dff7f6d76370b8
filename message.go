package gmsec

import (
	"fmt"
	"strings"
)

// FieldSelector filters a FieldIterator the way spec.md §4.7 describes.
type FieldSelector int

const (
	SelectAll FieldSelector = iota
	SelectHeaderOnly
	SelectNonHeader
)

// Message is the mutable domain object the engine validates (spec.md §3,
// §4.7). Field insertion is order-preserving: fields iterate, and
// serialize, in the order they were added, never in template order.
type Message struct {
	subject  string
	kind     MessageKind
	config   *Config
	schemaID string

	order  []string
	fields map[string]Field

	subjectTemplate []SubjectElement
	subjectValues   map[string]string

	factory *MessageFactory
}

// NewMessage creates an empty message with the given subject and kind.
// Most callers should prefer MessageFactory.CreateMessage, which
// pre-populates required header fields for a schema ID.
func NewMessage(subject string, kind MessageKind) *Message {
	return &Message{
		subject:       subject,
		kind:          kind,
		fields:        make(map[string]Field),
		subjectValues: make(map[string]string),
	}
}

func (m *Message) Subject() string     { return m.subject }
func (m *Message) Kind() MessageKind   { return m.kind }
func (m *Message) SchemaID() string    { return m.schemaID }
func (m *Message) Config() *Config     { return m.config }
func (m *Message) SetConfig(c *Config) { m.config = c }

// SetSubject overrides the subject string outright, bypassing subject
// element substitution.
func (m *Message) SetSubject(subject string) { m.subject = subject }

// SetSchemaID binds the schema ID this message will validate against
// (spec.md §4.6 step 1).
func (m *Message) SetSchemaID(id string) { m.schemaID = id }

// SetKind transitions the message's kind state (spec.md §4.7 "State
// machine"). Transitions are unconditional; callers are responsible for
// adding/removing the fields the new kind implies (RESPONSE-STATUS for
// REPLY, RESPONSE for REQUEST).
func (m *Message) SetKind(kind MessageKind) { m.kind = kind }

// bindSubjectTemplate records the subject element list a later
// SetSubjectElement call substitutes into (called by MessageFactory when
// creating a message for a schema ID).
func (m *Message) bindSubjectTemplate(elems []SubjectElement) {
	m.subjectTemplate = elems
	m.recomputeSubject()
}

// SetSubjectElement overrides one positional element of the message's
// subject template and recomputes the subject string. Elements left
// unspecified fall back to their template default (spec.md §8 scenario 6:
// "unspecified elements become FILL").
func (m *Message) SetSubjectElement(name, value string) error {
	if m.subjectTemplate == nil {
		return fmt.Errorf("message has no bound subject template; use SetSubject or create via MessageFactory")
	}
	found := false
	for _, se := range m.subjectTemplate {
		if se.Name == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("subject template has no element named %q", name)
	}
	m.subjectValues[name] = value
	m.recomputeSubject()
	return nil
}

func (m *Message) recomputeSubject() {
	if len(m.subjectTemplate) == 0 {
		return
	}
	parts := make([]string, 0, len(m.subjectTemplate))
	for _, se := range m.subjectTemplate {
		if v, ok := m.subjectValues[se.Name]; ok {
			parts = append(parts, v)
			continue
		}
		parts = append(parts, se.DefaultValue)
	}
	m.subject = strings.Join(parts, ".")
}

// AddField inserts field, taking an owned copy (spec.md §3 "Ownership and
// lifecycle"). Re-adding a name overwrites its value but keeps its
// original insertion position, matching map-with-stable-keys semantics.
func (m *Message) AddField(f Field) error {
	if !validFieldName(f.Name) {
		return newErrorf(ClassMsgError, CodeInvalidFieldName, "invalid field name %q", f.Name)
	}
	if _, exists := m.fields[f.Name]; !exists {
		m.order = append(m.order, f.Name)
	}
	m.fields[f.Name] = f.clone()
	return nil
}

// ClearField removes name if present, reporting whether it was found.
func (m *Message) ClearField(name string) bool {
	if _, ok := m.fields[name]; !ok {
		return false
	}
	delete(m.fields, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// HasField reports whether name is present.
func (m *Message) HasField(name string) bool {
	_, ok := m.fields[name]
	return ok
}

// GetField returns the field named name and whether it was present.
func (m *Message) GetField(name string) (Field, bool) {
	f, ok := m.fields[name]
	return f, ok
}

// GetFieldValue returns the field's string form, as used by the
// validation engine for enumeration and pattern checks (spec.md §4.7).
func (m *Message) GetFieldValue(name string) (string, bool) {
	f, ok := m.fields[name]
	if !ok {
		return "", false
	}
	return f.StringForm(), true
}

func (m *Message) GetI32Value(name string) (int32, error) {
	f, ok := m.fields[name]
	if !ok {
		return 0, fmt.Errorf("field %s not present", name)
	}
	return f.GetI32Value()
}

func (m *Message) GetI64Value(name string) (int64, error) {
	f, ok := m.fields[name]
	if !ok {
		return 0, fmt.Errorf("field %s not present", name)
	}
	return f.GetI64Value()
}

func (m *Message) GetF64Value(name string) (float64, error) {
	f, ok := m.fields[name]
	if !ok {
		return 0, fmt.Errorf("field %s not present", name)
	}
	return f.GetF64Value()
}

func (m *Message) GetStringValue(name string) (string, error) {
	f, ok := m.fields[name]
	if !ok {
		return "", fmt.Errorf("field %s not present", name)
	}
	return f.GetStringValue()
}

func (m *Message) GetBooleanValue(name string) (bool, error) {
	f, ok := m.fields[name]
	if !ok {
		return false, fmt.Errorf("field %s not present", name)
	}
	return f.GetBooleanValue()
}

// FieldNames returns field names in insertion order.
func (m *Message) FieldNames() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// FieldIterator iterates a Message's fields in insertion order, optionally
// filtered to header-only or non-header fields (spec.md §4.7).
type FieldIterator struct {
	msg      *Message
	selector FieldSelector
	pos      int
}

// FieldIterator returns a restartable iterator over m's fields.
func (m *Message) FieldIterator(selector FieldSelector) *FieldIterator {
	return &FieldIterator{msg: m, selector: selector}
}

// Next returns the next matching field, or ok=false when exhausted.
func (it *FieldIterator) Next() (Field, bool) {
	for it.pos < len(it.msg.order) {
		name := it.msg.order[it.pos]
		it.pos++
		f := it.msg.fields[name]
		switch it.selector {
		case SelectHeaderOnly:
			if !f.IsHeader {
				continue
			}
		case SelectNonHeader:
			if f.IsHeader {
				continue
			}
		}
		return f, true
	}
	return Field{}, false
}

// Reset restarts the iterator from the beginning.
func (it *FieldIterator) Reset() { it.pos = 0 }
