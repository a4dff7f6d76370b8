package gmsec

import (
	"strings"
)

// MessageFactory creates Message instances pre-populated with a
// Specification's header fields and subject template (spec.md §4.7
// "MessageFactory", §9 supplement "standard-fields registry"). Standard
// fields set via SetStandardFields are copied onto every message the
// factory creates afterward, the way the reference API's header/tracking
// fields get merged in at construction time.
type MessageFactory struct {
	spec           *Specification
	config         *Config
	standardFields map[string]Field
	standardOrder  []string
}

// NewMessageFactory returns a factory bound to spec. config, if non-nil,
// is attached to every message the factory creates.
func NewMessageFactory(spec *Specification, config *Config) *MessageFactory {
	return &MessageFactory{
		spec:           spec,
		config:         config,
		standardFields: make(map[string]Field),
	}
}

// SetStandardFields registers fields to be merged onto every message
// CreateMessage produces from now on, in the given order.
func (mf *MessageFactory) SetStandardFields(fields ...Field) {
	for _, f := range fields {
		if _, exists := mf.standardFields[f.Name]; !exists {
			mf.standardOrder = append(mf.standardOrder, f.Name)
		}
		mf.standardFields[f.Name] = f
	}
}

// ClearStandardFields removes every registered standard field.
func (mf *MessageFactory) ClearStandardFields() {
	mf.standardFields = make(map[string]Field)
	mf.standardOrder = nil
}

// CreateMessage builds a new Message for schemaID: binds its subject
// template, and pre-populates standard fields (spec.md §4.7).
func (mf *MessageFactory) CreateMessage(schemaID string) (*Message, error) {
	tmpl, ok := mf.spec.FindTemplate(schemaID)
	if !ok {
		return nil, newErrorf(ClassMsgError, CodeTemplateIDDoesNotExist,
			"no template is registered for schema ID %q", schemaID)
	}

	msg := NewMessage("", KindPublish)
	msg.SetSchemaID(tmpl.SchemaID)
	msg.SetConfig(mf.config)
	msg.bindSubjectTemplate(tmpl.SubjectElements)
	msg.factory = mf

	for _, f := range headerSubstitutionFields(tmpl.SchemaID) {
		if err := msg.AddField(f); err != nil {
			return nil, err
		}
	}

	for _, name := range mf.standardOrder {
		if err := msg.AddField(mf.standardFields[name]); err != nil {
			return nil, err
		}
	}

	return msg, nil
}

// headerSubstitutionFields derives MESSAGE-TYPE and MESSAGE-SUBTYPE from a
// schema ID, e.g. "MSG.LOG" -> MESSAGE-TYPE="MSG", MESSAGE-SUBTYPE="LOG"
// (spec.md §4.5 "Header substitution", §2 "C5 prepopulates required header
// fields"; the original does this same split, per gmmist_validation.cpp's
// "No need to add MESSAGE-TYPE and MESSAGE-SUBTYPE ... we do that for
// you!"). A schema ID with no "." carries nothing to substitute.
func headerSubstitutionFields(schemaID string) []Field {
	parts := strings.SplitN(schemaID, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil
	}
	msgType := NewStringField("MESSAGE-TYPE", parts[0])
	msgType.IsHeader = true
	msgSubtype := NewStringField("MESSAGE-SUBTYPE", parts[1])
	msgSubtype.IsHeader = true
	return []Field{msgType, msgSubtype}
}

// FromData builds a Message from an already-populated field set keyed by
// name, binding it against schemaID's template the same way CreateMessage
// does (spec.md §4.7 "FromData"). Codecs (codec_xml.go, codec_json.go) use
// this as their common construction path after parsing the wire form.
func (mf *MessageFactory) FromData(schemaID string, subject string, fields []Field) (*Message, error) {
	msg, err := mf.CreateMessage(schemaID)
	if err != nil {
		return nil, err
	}
	if subject != "" {
		msg.SetSubject(subject)
	}
	for _, f := range fields {
		if err := msg.AddField(f); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

// Specification returns the Specification this factory creates against.
func (mf *MessageFactory) Specification() *Specification { return mf.spec }

// subjectElementNames joins a template's subject element names, in order,
// with ".".
func subjectElementNames(tmpl *MessageTemplate) string {
	names := make([]string, len(tmpl.SubjectElements))
	for i, se := range tmpl.SubjectElements {
		names[i] = se.Name
	}
	return strings.Join(names, ".")
}
