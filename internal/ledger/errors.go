package ledger

import (
	"errors"
	"strings"
)

// Kind classifies every error the engine returns. Callers branch on the kind,
// never on backend-specific error strings.
type Kind uint8

const (
	// KindValidation: malformed or out-of-range caller input. Recoverable by
	// correcting the input; state is untouched.
	KindValidation Kind = iota + 1
	// KindConfiguration: an operation needed an established account and none
	// exists, or the stored configuration failed an integrity check.
	// Recoverable by running setup.
	KindConfiguration
	// KindStorage: the persistence layer failed. The engine does not retry;
	// transient conditions (locked database) are marked as such.
	KindStorage
)

// Error carries a primary message and optional secondary detail. Storage
// errors keep their cause for unwrapping.
type Error struct {
	Kind    Kind
	Message string
	Details string
	// Transient marks storage conditions the caller may retry, such as a
	// database locked by another process.
	Transient bool

	cause error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newValidation(message, details string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func newConfiguration(message, details string) *Error {
	return &Error{Kind: KindConfiguration, Message: message, Details: details}
}

func wrapStorage(err error, message string) *Error {
	e := &Error{
		Kind:    KindStorage,
		Message: message,
		Details: err.Error(),
		cause:   err,
	}
	if strings.Contains(strings.ToLower(err.Error()), "database is locked") {
		e.Message = "database is locked by another process"
		e.Details = "close other instances of the application and retry"
		e.Transient = true
	}
	return e
}

func isKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func IsValidation(err error) bool    { return isKind(err, KindValidation) }
func IsConfiguration(err error) bool { return isKind(err, KindConfiguration) }
func IsStorage(err error) bool       { return isKind(err, KindStorage) }
