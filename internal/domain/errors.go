package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a rejected operation. All kinds are local validation
// failures returned to the caller; none are retried internally.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindMismatch     ErrorKind = "mismatch"
	KindIneligible   ErrorKind = "ineligible"
	KindForbidden    ErrorKind = "forbidden"
	KindConflict     ErrorKind = "conflict"
	KindAvailability ErrorKind = "availability"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the error's kind, or "" for unclassified errors (storage and
// infrastructure failures).
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
