package common

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// UError is the error type returned by every package of this module.
//
// You should never create a UError directly. Instead, use NewError or WrapError.
// Compare errors with errors.Is against the sentinels below, which match any
// UError carrying the same code.
type UError struct {
	// Message is a concise and human-readable error message.
	// It does NOT need to be unique or stable.
	Message string
	// Code identifies the kind of failure and is stable.
	Code UCode

	// OccurredTime is the UTC time when the error occurred.
	OccurredTime time.Time

	// StackTrace is the stack trace of the error.
	// It is optional and can be nil.
	StackTrace *[]byte

	// OriginalError is the original error.
	// It is optional and can be nil.
	OriginalError error
}

//go:generate stringer -type=UCode
type UCode uint32

const (
	// UCodeInvalidKeyPairing means an insert would bind a key to a second entry,
	// e.g. one key is already stored and the other is not.
	UCodeInvalidKeyPairing UCode = 1
	// UCodeInconsistentIndex means the two key indexes of a DualMap disagree. It is always a bug.
	UCodeInconsistentIndex UCode = 2
	// UCodeDatabase is for database errors.
	UCodeDatabase UCode = 3
	// UCodeConfig means the configuration could not be read or is invalid.
	UCodeConfig UCode = 4
	// UCodeMalformedRecord means a record is missing a key or cannot be decoded.
	UCodeMalformedRecord UCode = 5
)

var (
	ErrInvalidKeyPairing = &UError{Code: UCodeInvalidKeyPairing, Message: "invalid key pairing"}
	ErrDatabase          = &UError{Code: UCodeDatabase, Message: "database error"}
	ErrMalformedRecord   = &UError{Code: UCodeMalformedRecord, Message: "malformed record"}
)

// NewError creates a new UError with the given code and message.
func NewError(code UCode, message string, withStacktrace bool) *UError {
	return WrapError(code, message, nil, withStacktrace)
}

// WrapError wraps the given error with a UError.
func WrapError(code UCode, message string, err error, withStacktrace bool) *UError {
	var runStack *[]byte
	if withStacktrace {
		stack := debug.Stack()
		runStack = &stack
	}
	return &UError{
		Message:       message,
		Code:          code,
		StackTrace:    runStack,
		OriginalError: err,
		OccurredTime:  time.Now().UTC(),
	}
}

// Error implements the error interface.
func (e *UError) Error() string {
	if e.OriginalError != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.OriginalError)
	}
	return e.Message
}

// Unwrap returns the wrapped error, if any.
func (e *UError) Unwrap() error {
	return e.OriginalError
}

// Is reports whether target is a UError with the same code.
func (e *UError) Is(target error) bool {
	var t *UError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// String returns a string representation of the UError. It is only for debugging, and not machine-readable.
func (e *UError) String() string {
	strBuilder := strings.Builder{}
	strBuilder.WriteString(fmt.Sprintf("UError{Code: %s, Message: %s, OccurredTime: %s", e.Code, e.Message, e.OccurredTime))
	if e.OriginalError != nil {
		strBuilder.WriteString(fmt.Sprintf(", OriginalError: %s", e.OriginalError))
	}
	if e.StackTrace != nil {
		strBuilder.WriteString(", StackTrace: ")
		strBuilder.Write(*e.StackTrace)
	}
	strBuilder.WriteString("}")
	return strBuilder.String()
}

// CodeOf returns the code of the first UError in err's chain.
func CodeOf(err error) (UCode, bool) {
	var uerr *UError
	if !errors.As(err, &uerr) {
		return 0, false
	}
	return uerr.Code, true
}
