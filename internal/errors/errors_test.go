package errors

import (
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := PermissionDenied("write to users/abc denied")
	if !Is(err, ErrPermissionDenied) {
		t.Error("expected Is(err, ErrPermissionDenied) to be true")
	}
	if Is(err, ErrNotFound) {
		t.Error("expected Is(err, ErrNotFound) to be false")
	}
}

func TestErrorIsMatchesThroughWrapping(t *testing.T) {
	inner := Unavailable("write failed")
	wrapped := fmt.Errorf("task 3: %w", inner)
	if !Is(wrapped, ErrUnavailable) {
		t.Error("expected wrapped error to match ErrUnavailable")
	}
}

func TestWithCauseIncludesCauseInMessage(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := ErrUnavailable.WithCause(cause)
	want := "remote unavailable: connection reset"
	if err.Error() != want {
		t.Errorf("Error(): got %q, want %q", err.Error(), want)
	}
	if Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestAsExtractsDomainError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Validation("name is required"))

	var e *Error
	if !As(wrapped, &e) {
		t.Fatal("expected As to find the *Error in the chain")
	}
	if e.Code != CodeValidation {
		t.Errorf("Code: got %q, want %q", e.Code, CodeValidation)
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(NoData("nothing to back up")); got != CodeNoData {
		t.Errorf("CodeOf: got %q, want %q", got, CodeNoData)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != CodeInternal {
		t.Errorf("CodeOf plain error: got %q, want %q", got, CodeInternal)
	}
	wrapped := fmt.Errorf("outer: %w", Unauthenticated("no user"))
	if got := CodeOf(wrapped); got != CodeUnauthenticated {
		t.Errorf("CodeOf wrapped: got %q, want %q", got, CodeUnauthenticated)
	}
}
