package errors

import (
	stderrors "errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeEngineFailed, "dot exited with status %d", 2)

	if err.Code != ErrCodeEngineFailed {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeEngineFailed)
	}
	want := "ENGINE_FAILED: dot exited with status 2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("exec: \"dot\": executable file not found in $PATH")
	err := Wrap(ErrCodeEngineNotFound, cause, "engine binary missing")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeConversion, "pdf to svg failed")

	if !Is(err, ErrCodeConversion) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeEngineFailed) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeConversion) {
		t.Error("Is should not match plain errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeEngineTimeout, "timed out")); got != ErrCodeEngineTimeout {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeEngineTimeout)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeEngineFailed, "mermaid exited with status 1")
	if got := UserMessage(err); got != "mermaid exited with status 1" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}
