package gmsec

import (
	"fmt"
	"regexp"
	"strings"
)

// headerStringPattern implements spec.md §9 Open Question (c): HEADER_STRING
// values are restricted to this character class.
var headerStringPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// timeFormatPattern matches a GMSEC TIME value: YYYY-DDDTHH:MM:SS optionally
// followed by a fractional-seconds suffix of 1 to 9 digits (spec.md §9 Open
// Question (b): more than 3 fractional digits warns rather than fails).
var timeFormatPattern = regexp.MustCompile(`^\d{4}-\d{3}T\d{2}:\d{2}:\d{2}(\.\d{1,9})?$`)

// Validate checks msg against the template spec resolves for its schema ID
// (spec.md §4.6). strict additionally rejects fields the template doesn't
// recognize (NON_ALLOWED_FIELD); non-strict callers accept unrecognized
// fields, matching the permissive default the original API ships with.
func Validate(spec *Specification, msg *Message, strict bool) *Status {
	status := newOKStatus()

	schemaID := msg.SchemaID()
	if schemaID == "" {
		composed, ok := spec.FindDefinition(spec.SchemaLevel, msg)
		if !ok {
			status.Class = ClassMsgError
			status.Code = CodeTemplateIDDoesNotExist
			status.addViolation("", CodeTemplateIDDoesNotExist,
				"message carries no schema ID and none could be composed from its key fields")
			return status
		}
		schemaID = composed
	}

	tmpl, ok := spec.FindTemplate(schemaID)
	if !ok {
		status.Class = ClassMsgError
		status.Code = CodeTemplateIDDoesNotExist
		status.addViolation(schemaID, CodeTemplateIDDoesNotExist, "no template is registered for this schema ID")
		return status
	}

	header := spec.HeaderFieldNames(tmpl.SchemaLevel)
	effective := tmpl.EffectiveFields(header)

	seen := make(map[string]bool, len(effective))
	for _, ft := range effective {
		seen[ft.ModifiedName()] = true
		validateField(status, msg, ft)
	}

	if strict {
		validateNoUnrecognizedFields(status, msg, seen)
	}

	validateSubjectElements(status, msg, tmpl)

	return status
}

func validateField(status *Status, msg *Message, ft *FieldTemplate) {
	eff := ft.Apply(msg)
	name := ft.ModifiedName()

	f, present := msg.GetField(name)

	if len(eff.Types) == 1 && eff.Types[0] == TypeUnset {
		if present {
			status.addViolation(name, CodeNonAllowedField, "field must be absent (UNSET)")
		}
		return
	}

	if !present {
		if eff.Mode == ModeRequired || eff.Mode == ModeTracking {
			status.addViolation(name, CodeMissingRequiredField, "required field is missing")
		}
		return
	}

	if !fieldTypeAllowed(f, eff.Types) {
		status.addViolation(name, CodeIncorrectFieldType,
			"field type "+string(f.Type)+" is not one of: "+ft.ConcatenatedTypes())
		return
	}

	if !fieldInRange(f) {
		status.addViolation(name, CodeInvalidFieldValue,
			fmt.Sprintf("value %s is outside the representable range of %s", f.StringForm(), f.Type))
		return
	}

	value := f.StringForm()

	for _, t := range eff.Types {
		switch t {
		case TypeHeaderString:
			if !headerStringPattern.MatchString(value) {
				status.addViolation(name, CodeInvalidFieldValue, "value does not match the HEADER_STRING character class")
			}
		case TypeTime:
			if !timeFormatPattern.MatchString(value) {
				status.addViolation(name, CodeInvalidFieldValue, "value is not a valid GMSEC TIME string")
			} else if idx := strings.IndexByte(value, '.'); idx >= 0 && len(value)-idx-1 > 3 {
				status.addWarning(name + ": fractional seconds beyond millisecond precision are ignored by some subscribers")
			}
		}
	}

	if len(eff.Values) > 0 && !containsString(eff.Values, value) {
		status.addViolation(name, CodeInvalidFieldValue, "value "+value+" is not one of: "+strings.Join(eff.Values, ","))
	}

	if eff.Pattern != "" {
		re, err := regexp.Compile(eff.Pattern)
		if err == nil && !re.MatchString(value) {
			status.addViolation(name, CodeInvalidFieldValue, "value does not match pattern "+eff.Pattern)
		}
	}
}

// fieldInRange reports whether f's numeric value falls within its declared
// type's representable range (spec.md §4.6 step 3, §8: "accepts v iff
// min(T) <= v <= max(T)"; negative values are rejected for unsigned types).
// Non-numeric types always pass; U64 is unbounded within our uint64
// representation so it always passes too.
func fieldInRange(f Field) bool {
	min, max, unsigned, ok := typeRange(f.Type)
	if !ok {
		return true
	}
	if unsigned {
		if f.Type == TypeU64 {
			return true
		}
		return f.u <= uint64(max)
	}
	return f.i >= min && f.i <= max
}

// fieldTypeAllowed reports whether f's concrete type satisfies types, with
// VARIABLE accepting any scalar type and TIME/HEADER_STRING accepting a
// STRING field, whose value format validateField checks separately
// (spec.md §4.6 step 3).
func fieldTypeAllowed(f Field, types []TypeTag) bool {
	for _, t := range types {
		if t == TypeVariable {
			return scalarTypes[f.Type]
		}
		if t == f.Type {
			return true
		}
		if (t == TypeTime || t == TypeHeaderString) && f.Type == TypeString {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func validateNoUnrecognizedFields(status *Status, msg *Message, recognized map[string]bool) {
	it := msg.FieldIterator(SelectAll)
	for {
		f, ok := it.Next()
		if !ok {
			break
		}
		if !recognized[f.Name] {
			status.addViolation(f.Name, CodeNonAllowedField, "field is not defined by the message template")
		}
	}
}

// validateSubjectElements checks that every non-optional subject element of
// tmpl resolves to a non-empty value in msg (spec.md §4.7 subject binding).
func validateSubjectElements(status *Status, msg *Message, tmpl *MessageTemplate) {
	for _, se := range tmpl.SubjectElements {
		if se.Optional {
			continue
		}
		v, ok := msg.subjectValues[se.Name]
		if !ok {
			v = se.DefaultValue
		}
		if v == "" {
			status.addViolation(se.Name, CodeInvalidFieldValue, "required subject element has no value")
		}
	}
}
