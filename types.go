package gmsec

// TypeTag names a GMSEC field type, including the pseudo-types the
// validation engine treats specially (spec.md §4.6 step 3).
type TypeTag string

const (
	TypeI8      TypeTag = "I8"
	TypeI16     TypeTag = "I16"
	TypeI32     TypeTag = "I32"
	TypeI64     TypeTag = "I64"
	TypeU8      TypeTag = "U8"
	TypeU16     TypeTag = "U16"
	TypeU32     TypeTag = "U32"
	TypeU64     TypeTag = "U64"
	TypeF32     TypeTag = "F32"
	TypeF64     TypeTag = "F64"
	TypeString  TypeTag = "STRING"
	TypeChar    TypeTag = "CHAR"
	TypeBoolean TypeTag = "BOOLEAN"
	TypeBinary  TypeTag = "BINARY"

	// Pseudo-types (spec.md §4.6 step 3, §9 Open Question a).
	TypeVariable     TypeTag = "VARIABLE"
	TypeHeaderString TypeTag = "HEADER_STRING"
	TypeTime         TypeTag = "TIME"
	TypeUnset        TypeTag = "UNSET"
)

// scalarTypes is the set of concrete (non-pseudo) GMSEC field types.
var scalarTypes = map[TypeTag]bool{
	TypeI8: true, TypeI16: true, TypeI32: true, TypeI64: true,
	TypeU8: true, TypeU16: true, TypeU32: true, TypeU64: true,
	TypeF32: true, TypeF64: true, TypeString: true, TypeChar: true,
	TypeBoolean: true, TypeBinary: true,
}

// FieldClass is the structural role of a FieldTemplate (spec.md §3).
type FieldClass string

const (
	ClassHeader   FieldClass = "HEADER"
	ClassStandard FieldClass = "STANDARD"
	ClassControl  FieldClass = "CONTROL"
)

// FieldMode is the presence requirement of a FieldTemplate (spec.md §3).
type FieldMode string

const (
	ModeRequired FieldMode = "REQUIRED"
	ModeOptional FieldMode = "OPTIONAL"
	ModeTracking FieldMode = "TRACKING"
)

// MessageKind is the GMSEC message kind state (spec.md §4.7 "State
// machine").
type MessageKind string

const (
	KindPublish MessageKind = "PUBLISH"
	KindRequest MessageKind = "REQUEST"
	KindReply   MessageKind = "REPLY"
)

// validFieldName implements spec.md §7 "Field name rules": only
// [A-Za-z0-9_-.], nonempty, no leading digit, no leading or trailing dot,
// no consecutive dots, <=255 chars.
func validFieldName(name string) bool {
	if name == "" || len(name) > 255 {
		return false
	}
	if name[0] >= '0' && name[0] <= '9' {
		return false
	}
	if name[0] == '.' || name[len(name)-1] == '.' {
		return false
	}
	prevDot := false
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			prevDot = false
		case r == '.':
			if prevDot {
				return false
			}
			prevDot = true
		default:
			return false
		}
	}
	return true
}
