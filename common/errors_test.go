package common

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUErrorIsMatchesCode(t *testing.T) {
	err := NewError(UCodeInvalidKeyPairing, "key 8869 is already paired", false)
	if !errors.Is(err, ErrInvalidKeyPairing) {
		t.Error("error does not match its sentinel")
	}
	if errors.Is(err, ErrDatabase) {
		t.Error("error matches a sentinel with another code")
	}

	wrapped := fmt.Errorf("adding employee: %w", err)
	if !errors.Is(wrapped, ErrInvalidKeyPairing) {
		t.Error("wrapped error does not match its sentinel")
	}
}

func TestWrapErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapError(UCodeDatabase, "failed to save employee", cause, false)

	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if !errors.Is(err, ErrDatabase) {
		t.Error("error does not match ErrDatabase")
	}
	if got := err.Error(); got != "failed to save employee: disk full" {
		t.Errorf("Error() = %q", got)
	}
	if err.StackTrace != nil {
		t.Error("stack trace captured without being asked for")
	}
}

func TestUErrorString(t *testing.T) {
	err := NewError(UCodeInconsistentIndex, "broken", true)
	s := err.String()
	if !strings.Contains(s, "UCodeInconsistentIndex") {
		t.Errorf("String() = %q; want the code name", s)
	}
	if !strings.Contains(s, "StackTrace") {
		t.Errorf("String() = %q; want a stack trace", s)
	}
	if UCode(42).String() != "UCode(42)" {
		t.Errorf("unknown code printed as %q", UCode(42).String())
	}
}

func TestCodeOf(t *testing.T) {
	if _, ok := CodeOf(errors.New("plain")); ok {
		t.Error("CodeOf found a code in a plain error")
	}
	code, ok := CodeOf(fmt.Errorf("x: %w", NewError(UCodeConfig, "bad", false)))
	if !ok || code != UCodeConfig {
		t.Errorf("CodeOf = %s, %v; want %s", code, ok, UCodeConfig)
	}
}
