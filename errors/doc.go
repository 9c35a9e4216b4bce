// Package errors provides structured error types for the geometry engine.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (error category). The Error type carries the offending dataset handle or
// capability name where one applies, plus a cause chain.
//
// Use convenience constructors for common patterns:
//
//	err := errors.NullReference()
//	err := errors.UnknownCapability("dataset-points")
//	err := errors.Execution("filter-execute", cause)
//
// All errors implement the standard error interface and support
// errors.Is/As. Two *Error values match under errors.Is when their Phase
// and Kind agree, so callers can classify failures without string checks.
package errors
