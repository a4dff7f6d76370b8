package gmsec

import "fmt"

// ErrorClass groups a StatusCode into one of the three families the core
// raises. It plays the role diagnostic.Severity plays in the XSD engine
// this package is adapted from, but carries the class/code/reason/custom
// tuple the GMSEC error model actually specifies.
type ErrorClass string

const (
	ClassNone               ErrorClass = "NO_ERROR"
	ClassSpecificationError ErrorClass = "SPECIFICATION_ERROR"
	ClassMsgError           ErrorClass = "MSG_ERROR"
	ClassFieldError         ErrorClass = "FIELD_ERROR"
)

// StatusCode enumerates the subcodes exercised by the core (spec.md §7).
type StatusCode string

const (
	CodeNone                   StatusCode = ""
	CodeTemplateDirNotFound    StatusCode = "TEMPLATE_DIR_NOT_FOUND"
	CodeTemplateDirError       StatusCode = "TEMPLATE_DIR_ERROR"
	CodeSchemaFailedToParse    StatusCode = "SCHEMA_FAILED_TO_PARSE"
	CodeInvalidConfigValue     StatusCode = "INVALID_CONFIG_VALUE"
	CodeTemplateIDDoesNotExist StatusCode = "TEMPLATE_ID_DOES_NOT_EXIST"
	CodeInvalidFieldName       StatusCode = "INVALID_FIELD_NAME"
	CodeIncorrectFieldType     StatusCode = "INCORRECT_FIELD_TYPE"
	CodeMissingRequiredField   StatusCode = "MISSING_REQUIRED_FIELD"
	CodeNonAllowedField        StatusCode = "NON_ALLOWED_FIELD"
	CodeInvalidFieldValue      StatusCode = "INVALID_FIELD_VALUE"
	CodeMessageParseError      StatusCode = "MSG_CONVERSION_ERROR"
)

// GmsecError is a fatal, constructor-time error. Parse-time failures during
// Specification construction surface as this (spec.md §7 "Propagation
// policy"); runtime validation failures never produce one from user input
// alone — those accumulate into a Status instead (see status.go).
type GmsecError struct {
	Class      ErrorClass
	Code       StatusCode
	Reason     string
	CustomCode int
}

func (e *GmsecError) Error() string {
	if e.CustomCode != 0 {
		return fmt.Sprintf("[%s/%s/%d]: %s", e.Class, e.Code, e.CustomCode, e.Reason)
	}
	return fmt.Sprintf("[%s/%s]: %s", e.Class, e.Code, e.Reason)
}

func newError(class ErrorClass, code StatusCode, reason string) *GmsecError {
	return &GmsecError{Class: class, Code: code, Reason: reason}
}

func newErrorf(class ErrorClass, code StatusCode, format string, args ...any) *GmsecError {
	return newError(class, code, fmt.Sprintf(format, args...))
}
