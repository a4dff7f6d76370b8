package gmsec

import "encoding/json"

type jsonEnvelope struct {
	Message wireMessage `json:"MESSAGE"`
}

// ToJSON renders msg in the GMSEC JSON message format (spec.md §6).
func ToJSON(msg *Message) (string, error) {
	env := jsonEnvelope{Message: newWireMessage(msg)}
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", newErrorf(ClassMsgError, CodeMessageParseError, "failed to render JSON message: %v", err)
	}
	return string(out), nil
}

// MessageFromJSON parses a GMSEC JSON message and binds it via mf against
// the template named by the document's SCHEMAID member (spec.md §6, §4.7
// "FromData"). A document with no SCHEMAID, or one naming no registered
// template, is rejected with an error.
func MessageFromJSON(mf *MessageFactory, data []byte) (*Message, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, newErrorf(ClassMsgError, CodeMessageParseError, "failed to parse JSON message: %v", err)
	}

	fields, err := fieldsFromWire(env.Message.Fields)
	if err != nil {
		return nil, err
	}

	msg, err := mf.FromData(env.Message.SchemaID, env.Message.Subject, fields)
	if err != nil {
		return nil, err
	}
	if env.Message.Kind != "" {
		msg.SetKind(MessageKind(env.Message.Kind))
	}
	return msg, nil
}
