package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseAcquire Phase = "acquire" // foreign module acquisition
	PhaseConfig  Phase = "config"  // engine configuration
	PhaseResolve Phase = "resolve" // dataset handle resolution
	PhaseInvoke  Phase = "invoke"  // capability lookup and dispatch
	PhaseExecute Phase = "execute" // foreign filter execution
	PhaseLoad    Phase = "load"    // dataset loading
)

// Kind categorizes the error
type Kind string

const (
	KindNullReference     Kind = "null_reference"
	KindStaleReference    Kind = "stale_reference"
	KindUnknownCapability Kind = "unknown_capability"
	KindExecution         Kind = "execution"
	KindInstantiation     Kind = "instantiation"
	KindInvalidInput      Kind = "invalid_input"
	KindInvalidData       Kind = "invalid_data"
	KindNotInitialized    Kind = "not_initialized"
	KindUnsupported       Kind = "unsupported"
	KindClosed            Kind = "closed"
)

// Error is the structured error type used throughout the engine
type Error struct {
	Cause      error
	Phase      Phase
	Kind       Kind
	Capability string
	Detail     string
	Handle     uint32
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Capability != "" {
		b.WriteString(" capability ")
		b.WriteString(e.Capability)
	}
	if e.Handle != 0 {
		fmt.Fprintf(&b, " handle %d", e.Handle)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// NullReference reports an attempt to resolve the reserved zero handle.
func NullReference() *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindNullReference,
		Detail: "null dataset reference",
	}
}

// StaleReference reports a nonzero handle with no live dataset behind it.
func StaleReference(handle uint32) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindStaleReference,
		Handle: handle,
		Detail: "dataset reference does not resolve to a live object",
	}
}

// UnknownCapability reports a capability name the foreign runtime does not
// export.
func UnknownCapability(name string) *Error {
	return &Error{
		Phase:      PhaseInvoke,
		Kind:       KindUnknownCapability,
		Capability: name,
		Detail:     "not exported by the foreign runtime",
	}
}

// Execution wraps a failure reported by a foreign capability.
func Execution(capability string, cause error) *Error {
	return &Error{
		Phase:      PhaseExecute,
		Kind:       KindExecution,
		Capability: capability,
		Cause:      cause,
	}
}

// ExecutionStatus reports a nonzero status code from a foreign execute
// capability.
func ExecutionStatus(capability string, status uint32) *Error {
	return &Error{
		Phase:      PhaseExecute,
		Kind:       KindExecution,
		Capability: capability,
		Detail:     fmt.Sprintf("foreign execution failed with status %d", status),
	}
}

// NoOutput reports a filter whose output retrieval produced no dataset.
func NoOutput(capability string) *Error {
	return &Error{
		Phase:      PhaseExecute,
		Kind:       KindExecution,
		Capability: capability,
		Detail:     "filter produced no output dataset",
	}
}

// Instantiation reports a foreign constructor that produced no object.
func Instantiation(capability string) *Error {
	return &Error{
		Phase:      PhaseInvoke,
		Kind:       KindInstantiation,
		Capability: capability,
		Detail:     "constructor returned no object",
	}
}

// Acquire reports a failure to acquire the foreign runtime module.
func Acquire(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseAcquire,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotInitialized reports use of a component before it was set up.
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// Unsupported reports an operation the configured runtime cannot perform.
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Closed reports use of an engine or table after Close.
func Closed(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", component),
	}
}

// Load reports a dataset loading failure.
func Load(source string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("load dataset %q", source),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
