package gmsec

import "encoding/xml"

// ToXML renders msg in the GMSEC XML message format (spec.md §6).
func ToXML(msg *Message) (string, error) {
	w := newWireMessage(msg)
	out, err := xml.MarshalIndent(struct {
		XMLName xml.Name `xml:"MESSAGE"`
		wireMessage
	}{wireMessage: w}, "", "  ")
	if err != nil {
		return "", newErrorf(ClassMsgError, CodeMessageParseError, "failed to render XML message: %v", err)
	}
	return string(out), nil
}

// MessageFromXML parses a GMSEC XML message and binds it via mf against the
// template named by the document's SCHEMAID attribute, the way a received
// message is reconstructed before validation (spec.md §6, §4.7 "FromData").
// A document with no SCHEMAID, or one naming no registered template, is
// rejected with an error.
func MessageFromXML(mf *MessageFactory, data []byte) (*Message, error) {
	var w struct {
		XMLName xml.Name `xml:"MESSAGE"`
		wireMessage
	}
	if err := xml.Unmarshal(data, &w); err != nil {
		return nil, newErrorf(ClassMsgError, CodeMessageParseError, "failed to parse XML message: %v", err)
	}

	fields, err := fieldsFromWire(w.Fields)
	if err != nil {
		return nil, err
	}

	schemaID := w.SchemaID
	msg, err := mf.FromData(schemaID, w.Subject, fields)
	if err != nil {
		return nil, err
	}
	if w.Kind != "" {
		msg.SetKind(MessageKind(w.Kind))
	}
	return msg, nil
}
