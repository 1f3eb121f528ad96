package errors

import (
	stderrors "errors"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	err := New(ErrCodeNotFound, "order not found")
	if got := err.Error(); got != "NOT_FOUND: order not found" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("record not found")
	err := Wrap(cause, ErrCodeInternalError, "lookup failed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match the cause via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestHasCode(t *testing.T) {
	err := New(ErrCodeAlreadyConsumed, "promo already used")

	if !HasCode(err, ErrCodeAlreadyConsumed) {
		t.Error("HasCode should match the error's own code")
	}
	if HasCode(err, ErrCodeNotFound) {
		t.Error("HasCode must not match a different code")
	}
	if HasCode(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("HasCode must not match a plain error")
	}
	if HasCode(nil, ErrCodeNotFound) {
		t.Error("HasCode must not match nil")
	}
}
