// Package core contains the single source of truth for the IPUMS metadata
// model: record types, the record hierarchy, datasets, variables, category
// bins and subpopulation conditions. It mirrors the shape of a schema model
// (tables/columns) but for microdata variables instead of SQL columns.
package core

import "fmt"

// ErrorKind classifies an MdError so callers can branch on the taxonomy
// from the error model without string matching.
type ErrorKind string

const (
	// ErrKindMsg is a free-form message with no further structure.
	ErrKindMsg ErrorKind = "MSG"
	// ErrKindMetadata covers missing/invalid metadata: unknown variable or
	// dataset names, missing data type, missing formatting width.
	ErrKindMetadata ErrorKind = "METADATA"
	// ErrKindExecution wraps an error from the embedded SQL engine.
	ErrKindExecution ErrorKind = "EXECUTION"
	// ErrKindUnimplemented marks a feature reserved but not yet built.
	ErrKindUnimplemented ErrorKind = "UNIMPLEMENTED"
)

// MdError is the error type returned by this module's core APIs; the one
// exception is package layout, which reports a malformed layout line as
// *layout.ParseError. It carries enough structure for callers to distinguish user
// input mistakes from metadata problems from engine failures, while still
// behaving as a normal Go error.
type MdError struct {
	Kind    ErrorKind
	Entity  string // e.g. "variable", "dataset", "category bin"
	Name    string // the offending name, if any
	Message string
	Err     error // wrapped cause, e.g. the engine's error
}

func (e *MdError) Error() string {
	switch {
	case e.Err != nil && e.Name != "":
		return fmt.Sprintf("%s %q: %s: %v", e.Entity, e.Name, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Name != "":
		return fmt.Sprintf("%s %q: %s", e.Entity, e.Name, e.Message)
	default:
		return e.Message
	}
}

// Unwrap lets errors.Is / errors.As see through to the wrapped cause.
func (e *MdError) Unwrap() error { return e.Err }

// Msg builds a free-form MdError, the equivalent of the teacher's bare
// ValidationError-with-no-field case.
func Msg(format string, args ...any) *MdError {
	return &MdError{Kind: ErrKindMsg, Message: fmt.Sprintf(format, args...)}
}

// MetadataErr builds a metadata-kind error naming the offending entity.
func MetadataErr(entity, name, format string, args ...any) *MdError {
	return &MdError{Kind: ErrKindMetadata, Entity: entity, Name: name, Message: fmt.Sprintf(format, args...)}
}

// UnknownVariable is the canonical "variable not found" error.
func UnknownVariable(name string) *MdError {
	return MetadataErr("variable", name, "unknown variable")
}

// UnknownDataset is the canonical "dataset not found" error.
func UnknownDataset(name string) *MdError {
	return MetadataErr("dataset", name, "unknown dataset")
}

// ExecutionErr wraps an error surfaced by the embedded SQL engine.
func ExecutionErr(message string, cause error) *MdError {
	return &MdError{Kind: ErrKindExecution, Message: message, Err: cause}
}

// Unimplemented marks a reserved-but-not-built feature (CSV/HTML output,
// full metadata DB loading, DataFusion/Polars dialects).
func Unimplemented(feature string) *MdError {
	return &MdError{Kind: ErrKindUnimplemented, Message: fmt.Sprintf("%s is not implemented", feature)}
}
