// Package fault carries the closed set of failure kinds produced by the
// summarization pipeline so the HTTP boundary can map each one to a response
// status without inspecting error text.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// UnsupportedFormat means the declared file extension is not one of the
	// recognized document formats.
	UnsupportedFormat Kind = iota
	// CapabilityUnavailable means a decoding capability could not be loaded.
	// This is a deployment problem, not a bad document.
	CapabilityUnavailable
	// ExtractionFailed means the document is present but undecodable, or it
	// yielded no usable text.
	ExtractionFailed
	// ServiceUnreachable means the generation service could not be reached
	// before the network timeout expired.
	ServiceUnreachable
	// ServiceError means the generation service responded with a non-success
	// status.
	ServiceError
	// EmptyResponse means the generation service responded successfully but
	// the completion was empty after trimming whitespace.
	EmptyResponse
)

func (k Kind) String() string {
	switch k {
	case UnsupportedFormat:
		return "unsupported_format"
	case CapabilityUnavailable:
		return "capability_unavailable"
	case ExtractionFailed:
		return "extraction_failed"
	case ServiceUnreachable:
		return "service_unreachable"
	case ServiceError:
		return "service_error"
	case EmptyResponse:
		return "empty_response"
	default:
		return "unknown"
	}
}

// Error pairs a failure kind with a human-readable detail string.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with a formatted detail string.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error that keeps the underlying cause in the chain.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the failure kind carried anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}
