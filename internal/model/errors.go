package model

import "fmt"

// LoadErrorKind classifies a catalogue-load failure (spec.md §4.1).
type LoadErrorKind int

const (
	// UnknownParamType: a type's parameter names a parameter type the
	// catalogue never declared.
	UnknownParamType LoadErrorKind = iota
	// UnknownType: a method input/output names a type the catalogue
	// never declared.
	UnknownType
	// UnknownParam: a constraint/statement names a parameter the target
	// type definition doesn't declare.
	UnknownParam
	// BadEnumValue: an enum literal isn't in the referenced enum's value
	// list.
	BadEnumValue
	// MalformedPlaceholder: an output statement's placeholder never
	// appears in that method's input constraints (spec.md §3 invariant).
	MalformedPlaceholder
)

func (k LoadErrorKind) String() string {
	switch k {
	case UnknownParamType:
		return "unknown parameter type"
	case UnknownType:
		return "unknown type"
	case UnknownParam:
		return "unknown parameter"
	case BadEnumValue:
		return "bad enum value"
	case MalformedPlaceholder:
		return "malformed placeholder"
	}
	return "unknown load error"
}

// LoadError is a fatal-per-request catalogue load failure (spec.md §7).
// All load failures are fatal for the load and surface as a single error
// to the external caller.
type LoadError struct {
	Kind    LoadErrorKind
	Subject string // the offending name (type, method, enum, param, ...)
	Detail  string
}

func (e *LoadError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("catalogue load error: %s %q: %s", e.Kind, e.Subject, e.Detail)
	}
	return fmt.Sprintf("catalogue load error: %s %q", e.Kind, e.Subject)
}

// BadRequestErrorKind classifies a planning-request validation failure
// (spec.md §7).
type BadRequestErrorKind int

const (
	// UndefinedStartType: a start object names a type the catalogue
	// never declared.
	UndefinedStartType BadRequestErrorKind = iota
	// UndefinedTargetType: the target description names a type, or a
	// parameter on its type, the catalogue never declared.
	UndefinedTargetType
	// BadStartLiteral: a start object names a parameter its type does not
	// declare, or a parameter literal fails to instantiate or is not a
	// concrete int/enum value.
	BadStartLiteral
)

func (k BadRequestErrorKind) String() string {
	switch k {
	case UndefinedStartType:
		return "undefined start type"
	case UndefinedTargetType:
		return "undefined target type"
	case BadStartLiteral:
		return "bad start literal"
	}
	return "unknown bad request error"
}

// BadRequestError is a fatal-per-request error raised before the search
// begins: start or target refers to an undefined type or parameter, or a
// start parameter literal fails to instantiate (spec.md §7).
type BadRequestError struct {
	Kind    BadRequestErrorKind
	Subject string
	Detail  string
}

func (e *BadRequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("bad request: %s %q: %s", e.Kind, e.Subject, e.Detail)
	}
	return fmt.Sprintf("bad request: %s %q", e.Kind, e.Subject)
}

// InternalInvariant panics to signal a programmer error that must never
// occur on a correctly validated catalogue (spec.md §7): e.g. the
// reconstructor finding an input TypeInstance not registered in its map.
// Assertions are not caught; they are programmer errors.
func InternalInvariant(format string, args ...any) {
	panic(fmt.Sprintf("internal invariant violated: "+format, args...))
}
