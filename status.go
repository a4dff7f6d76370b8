package gmsec

import "strings"

// Status is the aggregate result of a Validate call (spec.md §4.6, §7).
// Unlike GmsecError, it is never thrown: every per-field and per-subject
// violation is appended to it and it is handed back to the caller whole.
// The shape mirrors the XSD engine's Diagnostic (severity/code/message),
// but collapses to the single reason string + per-field detail the GMSEC
// wire format expects.
type Status struct {
	Class      ErrorClass
	Code       StatusCode
	Details    []FieldViolation
	Warnings   []string
	CustomCode int
}

// FieldViolation names the field template a single check failed against,
// the violated rule, and a human-readable description. Engine diagnostics
// accumulate in the order field templates appear in the effective list
// (spec.md §5 "Ordering").
type FieldViolation struct {
	Field  string
	Code   StatusCode
	Reason string
}

// OK reports whether the status carries no violations.
func (s *Status) OK() bool {
	return s == nil || len(s.Details) == 0
}

// Reason concatenates per-field diagnostics into the single reason string
// spec.md §4.6 step 5 describes.
func (s *Status) Reason() string {
	if s.OK() {
		return ""
	}
	parts := make([]string, 0, len(s.Details))
	for _, d := range s.Details {
		parts = append(parts, d.Field+": "+d.Reason)
	}
	return strings.Join(parts, "; ")
}

func newOKStatus() *Status {
	return &Status{Class: ClassNone, Code: CodeNone}
}

func (s *Status) addViolation(field string, code StatusCode, reason string) {
	if s.Class == ClassNone {
		s.Class = classForCode(code)
		s.Code = code
	}
	s.Details = append(s.Details, FieldViolation{Field: field, Code: code, Reason: reason})
}

func (s *Status) addWarning(w string) {
	s.Warnings = append(s.Warnings, w)
}

func classForCode(code StatusCode) ErrorClass {
	switch code {
	case CodeInvalidFieldValue:
		return ClassFieldError
	case CodeInvalidFieldName, CodeIncorrectFieldType, CodeMissingRequiredField, CodeNonAllowedField:
		return ClassMsgError
	default:
		return ClassSpecificationError
	}
}
