package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by how the run reacts to it.
type Kind string

const (
	// KindConfig aborts before any network call.
	KindConfig Kind = "config"
	// KindTransport ends pagination or fails a single API call.
	KindTransport Kind = "transport"
	// KindRecord skips one record and lets the batch continue.
	KindRecord Kind = "record"
	// KindSink is a file or database write failure.
	KindSink Kind = "sink"
)

// Error is an application error tagged with a Kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
