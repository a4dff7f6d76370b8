package gmsec

import (
	"encoding/hex"
	"strconv"
)

// wireField and wireMessage are the shared XML/JSON wire shapes (spec.md
// §6 "Wire formats"). Unlike template parsing (xsd_loader.go, directory.go),
// which walks go-xmldom documents the way the teacher's schema.go/
// schema_loader.go do, encoding a Message to/from its wire form is a flat
// attribute/value round trip with no nested grammar to resolve — the XSD
// engine this package is adapted from never exercises a write path, so
// there's nothing to generalize from it here. Using encoding/xml and
// encoding/json directly is the one place this package reaches for the
// standard library over an ecosystem dependency.
type wireField struct {
	Name  string `xml:"NAME,attr" json:"NAME"`
	Type  string `xml:"TYPE,attr" json:"TYPE"`
	Value string `xml:",chardata" json:"VALUE"`
}

type wireMessage struct {
	Subject  string      `xml:"SUBJECT,attr" json:"SUBJECT"`
	Kind     string      `xml:"KIND,attr" json:"KIND"`
	SchemaID string      `xml:"SCHEMAID,attr,omitempty" json:"SCHEMAID,omitempty"`
	Fields   []wireField `xml:"FIELD" json:"FIELD"`
}

func newWireMessage(msg *Message) wireMessage {
	w := wireMessage{Subject: msg.Subject(), Kind: string(msg.Kind()), SchemaID: msg.SchemaID()}
	it := msg.FieldIterator(SelectAll)
	for {
		f, ok := it.Next()
		if !ok {
			break
		}
		w.Fields = append(w.Fields, wireField{Name: f.Name, Type: string(f.Type), Value: f.StringForm()})
	}
	return w
}

func fieldsFromWire(in []wireField) ([]Field, error) {
	out := make([]Field, 0, len(in))
	for _, wf := range in {
		f, err := fieldFromWire(wf.Name, wf.Type, wf.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// fieldFromWire reconstructs a typed Field from its wire (name, type,
// string-value) triple (spec.md §6 "Wire formats" round trip).
func fieldFromWire(name, typ, value string) (Field, error) {
	switch TypeTag(typ) {
	case TypeI8:
		n, err := strconv.ParseInt(value, 10, 8)
		return NewI8Field(name, int8(n)), wireErr(name, err)
	case TypeI16:
		n, err := strconv.ParseInt(value, 10, 16)
		return NewI16Field(name, int16(n)), wireErr(name, err)
	case TypeI32:
		n, err := strconv.ParseInt(value, 10, 32)
		return NewI32Field(name, int32(n)), wireErr(name, err)
	case TypeI64:
		n, err := strconv.ParseInt(value, 10, 64)
		return NewI64Field(name, n), wireErr(name, err)
	case TypeU8:
		n, err := strconv.ParseUint(value, 10, 8)
		return NewU8Field(name, uint8(n)), wireErr(name, err)
	case TypeU16:
		n, err := strconv.ParseUint(value, 10, 16)
		return NewU16Field(name, uint16(n)), wireErr(name, err)
	case TypeU32:
		n, err := strconv.ParseUint(value, 10, 32)
		return NewU32Field(name, uint32(n)), wireErr(name, err)
	case TypeU64:
		n, err := strconv.ParseUint(value, 10, 64)
		return NewU64Field(name, n), wireErr(name, err)
	case TypeF32:
		n, err := strconv.ParseFloat(value, 32)
		return NewF32Field(name, float32(n)), wireErr(name, err)
	case TypeF64:
		n, err := strconv.ParseFloat(value, 64)
		return NewF64Field(name, n), wireErr(name, err)
	case TypeChar:
		if len(value) == 0 {
			return Field{}, newErrorf(ClassMsgError, CodeMessageParseError, "field %s: CHAR value is empty", name)
		}
		return NewCharField(name, []rune(value)[0]), nil
	case TypeBoolean:
		switch value {
		case "TRUE", "true", "1":
			return NewBooleanField(name, true), nil
		case "FALSE", "false", "0":
			return NewBooleanField(name, false), nil
		default:
			return Field{}, newErrorf(ClassMsgError, CodeMessageParseError, "field %s: %q is not a boolean literal", name, value)
		}
	case TypeBinary:
		b, err := hex.DecodeString(value)
		return NewBinaryField(name, b), wireErr(name, err)
	case TypeString, TypeHeaderString, TypeTime, TypeVariable, TypeUnset:
		return NewStringField(name, value), nil
	default:
		return NewStringField(name, value), nil
	}
}

func wireErr(name string, err error) error {
	if err == nil {
		return nil
	}
	return newErrorf(ClassMsgError, CodeMessageParseError, "field %s: %v", name, err)
}
