package rs

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	cause := errors.New("device lost")
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindInvalidState}, "rs: invalid state"},
		{newError("Destroy", ErrAlreadyDestroyed), "rs: Destroy: object already destroyed"},
		{illegalArgument("SetRadius", "Radius out of range (0 < r <= 25)."), "rs: SetRadius: Radius out of range (0 < r <= 25)."},
		{runtimeError("NewContext", cause), "rs: NewContext: runtime error: device lost"},
		{&Error{Kind: ErrorKind(9), Op: "x"}, "rs: x: unknown"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestError_Is(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"kind sentinel", newError("ID", ErrDestroyed), ErrInvalidState, true},
		{"detail sentinel", newError("ID", ErrDestroyed), ErrDestroyed, true},
		{"other detail", newError("ID", ErrDestroyed), ErrContextMismatch, false},
		{"other kind", newError("ID", ErrDestroyed), ErrRuntime, false},
		{"not bound is runtime", newError("ID", ErrNotBound), ErrRuntime, true},
		{"illegal argument", invalidState("op", "bad"), ErrIllegalArgument, false},
		{"wrapped", fmt.Errorf("outer: %w", newError("Destroy", ErrAlreadyDestroyed)), ErrAlreadyDestroyed, true},
		{"cause", runtimeError("op", cause), cause, true},
		{"plain target", newError("ID", ErrDestroyed), cause, false},
	}
	for _, tt := range tests {
		if got := errors.Is(tt.err, tt.target); got != tt.want {
			t.Errorf("%s: errors.Is = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestError_As(t *testing.T) {
	err := fmt.Errorf("wrap: %w", illegalArgument("SetLUT", "LUT must be 3d."))
	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("errors.As failed")
	}
	if e.Kind != KindIllegalArgument || e.Op != "SetLUT" || e.Detail != "LUT must be 3d." {
		t.Errorf("got %+v", e)
	}
}

// wantDetail fails unless err is an *Error of kind with the given detail.
func wantDetail(t *testing.T, err error, kind ErrorKind, detail string) {
	t.Helper()
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if e.Kind != kind || e.Detail != detail {
		t.Errorf("err = %v, want %s %q", err, kind, detail)
	}
}
