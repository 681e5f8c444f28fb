package session

import (
	"errors"
	"fmt"
)

// Kind classifies session errors so callers can map them onto their own
// surface (HTTP statuses, CLI messages) without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindNotFound
	KindConflict
	KindFailedPrecondition
	KindInvalidState
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindFailedPrecondition:
		return "failed_precondition"
	case KindInvalidState:
		return "invalid_state"
	default:
		return "unknown"
	}
}

// Error is a session error carrying a classification kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func invalidArgf(format string, args ...any) *Error {
	return errorf(KindInvalidArgument, format, args...)
}

func notFoundf(format string, args ...any) *Error {
	return errorf(KindNotFound, format, args...)
}

func conflictf(format string, args ...any) *Error {
	return errorf(KindConflict, format, args...)
}

func preconditionf(format string, args ...any) *Error {
	return errorf(KindFailedPrecondition, format, args...)
}

func invalidStatef(format string, args ...any) *Error {
	return errorf(KindInvalidState, format, args...)
}

// KindOf extracts the classification from err, or KindUnknown for plain errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
