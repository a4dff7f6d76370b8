package gmsec

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
)

// Field is a tagged union over the 13 GMSEC scalar types plus Binary
// (spec.md §4.7). It replaces an inheritance hierarchy the way the XSD
// engine's Type interface does for schema types: a single Type tag drives
// both serialization and validation instead of a class per kind.
type Field struct {
	Name       string
	Type       TypeTag
	IsHeader   bool
	isTracking bool

	i   int64  // I8/I16/I32/I64, Char (rune), Boolean (0/1)
	u   uint64 // U8/U16/U32/U64
	f   float64
	s   string
	bin []byte
}

func NewI8Field(name string, v int8) Field   { return Field{Name: name, Type: TypeI8, i: int64(v)} }
func NewI16Field(name string, v int16) Field { return Field{Name: name, Type: TypeI16, i: int64(v)} }
func NewI32Field(name string, v int32) Field { return Field{Name: name, Type: TypeI32, i: int64(v)} }
func NewI64Field(name string, v int64) Field { return Field{Name: name, Type: TypeI64, i: v} }
func NewU8Field(name string, v uint8) Field  { return Field{Name: name, Type: TypeU8, u: uint64(v)} }
func NewU16Field(name string, v uint16) Field {
	return Field{Name: name, Type: TypeU16, u: uint64(v)}
}
func NewU32Field(name string, v uint32) Field {
	return Field{Name: name, Type: TypeU32, u: uint64(v)}
}
func NewU64Field(name string, v uint64) Field { return Field{Name: name, Type: TypeU64, u: v} }
func NewF32Field(name string, v float32) Field {
	return Field{Name: name, Type: TypeF32, f: float64(v)}
}
func NewF64Field(name string, v float64) Field { return Field{Name: name, Type: TypeF64, f: v} }
func NewStringField(name string, v string) Field {
	return Field{Name: name, Type: TypeString, s: v}
}
func NewCharField(name string, v rune) Field { return Field{Name: name, Type: TypeChar, i: int64(v)} }
func NewBooleanField(name string, v bool) Field {
	var i int64
	if v {
		i = 1
	}
	return Field{Name: name, Type: TypeBoolean, i: i}
}
func NewBinaryField(name string, v []byte) Field {
	return Field{Name: name, Type: TypeBinary, bin: append([]byte(nil), v...)}
}

// clone returns an owned copy; Message.addField takes an owned copy
// per spec.md §3 "Ownership and lifecycle".
func (f Field) clone() Field {
	out := f
	if f.bin != nil {
		out.bin = append([]byte(nil), f.bin...)
	}
	return out
}

// typeRange gives the representable [min,max] for numeric type tags, used
// by the validation engine's range check (spec.md §4.6 step 3, §8).
func typeRange(t TypeTag) (min, max int64, unsigned bool, ok bool) {
	switch t {
	case TypeI8:
		return math.MinInt8, math.MaxInt8, false, true
	case TypeI16:
		return math.MinInt16, math.MaxInt16, false, true
	case TypeI32:
		return math.MinInt32, math.MaxInt32, false, true
	case TypeI64:
		return math.MinInt64, math.MaxInt64, false, true
	case TypeU8:
		return 0, math.MaxUint8, true, true
	case TypeU16:
		return 0, math.MaxUint16, true, true
	case TypeU32:
		return 0, math.MaxUint32, true, true
	case TypeU64:
		return 0, 0, true, true // checked specially, see fieldInRange in gmsec_validator.go
	default:
		return 0, 0, false, false
	}
}

// StringForm renders the field's value the way the engine compares it
// against enumerated values and patterns (spec.md §4.7 getFieldValue).
func (f Field) StringForm() string {
	switch f.Type {
	case TypeI8, TypeI16, TypeI32, TypeI64:
		return strconv.FormatInt(f.i, 10)
	case TypeChar:
		return string(rune(f.i))
	case TypeU8, TypeU16, TypeU32, TypeU64:
		return strconv.FormatUint(f.u, 10)
	case TypeF32:
		return strconv.FormatFloat(f.f, 'g', -1, 32)
	case TypeF64:
		return strconv.FormatFloat(f.f, 'g', -1, 64)
	case TypeString, TypeHeaderString, TypeTime:
		return f.s
	case TypeBoolean:
		if f.i != 0 {
			return "TRUE"
		}
		return "FALSE"
	case TypeBinary:
		return hex.EncodeToString(f.bin)
	default:
		return f.s
	}
}

// GetI32Value coerces the field's value to int32 where lossless, matching
// the typed getters spec.md §4.7 describes. Coercion failures (e.g. calling
// this on a non-numeric string) are reported as exceptions per spec.md §7.
func (f Field) GetI32Value() (int32, error) {
	i, err := f.getI64()
	if err != nil {
		return 0, err
	}
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, fmt.Errorf("field %s: value %d does not fit in I32", f.Name, i)
	}
	return int32(i), nil
}

// GetI64Value coerces the field's value to int64 where lossless.
func (f Field) GetI64Value() (int64, error) { return f.getI64() }

func (f Field) getI64() (int64, error) {
	switch f.Type {
	case TypeI8, TypeI16, TypeI32, TypeI64, TypeChar, TypeBoolean:
		return f.i, nil
	case TypeU8, TypeU16, TypeU32:
		return int64(f.u), nil
	case TypeU64:
		if f.u > math.MaxInt64 {
			return 0, fmt.Errorf("field %s: U64 value %d overflows int64", f.Name, f.u)
		}
		return int64(f.u), nil
	case TypeF32, TypeF64:
		if f.f != math.Trunc(f.f) {
			return 0, fmt.Errorf("field %s: float value %v is not integral", f.Name, f.f)
		}
		return int64(f.f), nil
	case TypeString, TypeHeaderString, TypeTime:
		n, err := strconv.ParseInt(f.s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field %s: cannot coerce %q to integer: %w", f.Name, f.s, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("field %s: type %s is not coercible to an integer", f.Name, f.Type)
	}
}

// GetF64Value coerces the field's value to float64.
func (f Field) GetF64Value() (float64, error) {
	switch f.Type {
	case TypeF32, TypeF64:
		return f.f, nil
	case TypeI8, TypeI16, TypeI32, TypeI64, TypeChar, TypeBoolean:
		return float64(f.i), nil
	case TypeU8, TypeU16, TypeU32, TypeU64:
		return float64(f.u), nil
	case TypeString, TypeHeaderString, TypeTime:
		v, err := strconv.ParseFloat(f.s, 64)
		if err != nil {
			return 0, fmt.Errorf("field %s: cannot coerce %q to float: %w", f.Name, f.s, err)
		}
		return v, nil
	default:
		return 0, fmt.Errorf("field %s: type %s is not coercible to a float", f.Name, f.Type)
	}
}

// GetStringValue returns the field's string form, coercing numeric and
// boolean types the way spec.md §4.7 describes.
func (f Field) GetStringValue() (string, error) {
	return f.StringForm(), nil
}

// GetBooleanValue coerces the field's value to bool.
func (f Field) GetBooleanValue() (bool, error) {
	switch f.Type {
	case TypeBoolean:
		return f.i != 0, nil
	case TypeI8, TypeI16, TypeI32, TypeI64:
		return f.i != 0, nil
	case TypeString, TypeHeaderString:
		switch f.s {
		case "TRUE", "true", "1":
			return true, nil
		case "FALSE", "false", "0":
			return false, nil
		}
		return false, fmt.Errorf("field %s: %q is not a boolean literal", f.Name, f.s)
	default:
		return false, fmt.Errorf("field %s: type %s is not coercible to boolean", f.Name, f.Type)
	}
}

// GetBinaryValue returns the raw bytes of a Binary field.
func (f Field) GetBinaryValue() ([]byte, error) {
	if f.Type != TypeBinary {
		return nil, fmt.Errorf("field %s: type %s is not Binary", f.Name, f.Type)
	}
	return append([]byte(nil), f.bin...), nil
}
