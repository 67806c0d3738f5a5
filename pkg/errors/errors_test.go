package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPosition, "node %q has %d components", "a", 2)

	if err.Code != ErrCodeInvalidPosition {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidPosition)
	}
	want := `INVALID_POSITION: node "a" has 2 components`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeStore, cause, "load scene %s", "demo")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause with errors.Is")
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeContract, "color has 3 channels")

	if !Is(err, ErrCodeContract) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeStore) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeContract) {
		t.Error("Is should not match plain errors")
	}

	// Is unwraps through fmt wrapping.
	wrapped := fmt.Errorf("while syncing: %w", err)
	if !Is(wrapped, ErrCodeContract) {
		t.Error("Is should unwrap to find the code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeCache, "miss")); got != ErrCodeCache {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeCache)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeUnsupportedKind, "no primitive for kind 7")
	if got := UserMessage(err); got != "no primitive for kind 7" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
