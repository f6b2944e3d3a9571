package parser

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure classes a parse can end with.
type ErrorKind uint8

const (
	// KindXML is malformed markup reported by the underlying tokenizer.
	KindXML ErrorKind = iota + 1
	// KindInvalidBoolean is text outside {"True","False"} where a boolean
	// was required.
	KindInvalidBoolean
	// KindUnexpectedEndOfInput is a document that ended while a nested
	// parse was still expecting events.
	KindUnexpectedEndOfInput
	// KindUnexpectedNestedElement is an element-open where bare text was
	// required.
	KindUnexpectedNestedElement
	// KindAttributeNotFound is a required attribute that was absent.
	KindAttributeNotFound
	// KindTextEncoding is decoded bytes that are not valid text.
	KindTextEncoding
	// KindIntegerFormat is numeric text that failed to parse as an integer.
	KindIntegerFormat
	// KindFloatFormat is numeric text that failed to parse as a float.
	KindFloatFormat
	// KindTimeSpanFormat is text that matched neither time-span encoding.
	KindTimeSpanFormat
	// KindDateFormat is a timestamp that failed the fixed date-time grammar.
	KindDateFormat
)

func (k ErrorKind) String() string {
	switch k {
	case KindXML:
		return "xml"
	case KindInvalidBoolean:
		return "invalid_boolean"
	case KindUnexpectedEndOfInput:
		return "unexpected_end_of_input"
	case KindUnexpectedNestedElement:
		return "unexpected_nested_element"
	case KindAttributeNotFound:
		return "attribute_not_found"
	case KindTextEncoding:
		return "text_encoding"
	case KindIntegerFormat:
		return "integer_format"
	case KindFloatFormat:
		return "float_format"
	case KindTimeSpanFormat:
		return "time_span_format"
	case KindDateFormat:
		return "date_format"
	default:
		return "unknown"
	}
}

// Error is the single fatal error type shared by every combinator and
// builder. It carries the failure class and, where one exists, the
// underlying cause.
type Error struct {
	Kind  ErrorKind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse splits: %s: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("parse splits: %s", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind ErrorKind) *Error {
	return &Error{Kind: kind}
}

func wrapError(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

var errAttemptMissingID = errors.New(`attribute "id" on attempt history entry`)

// IsKind reports whether err is a parse Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}
