package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeIndexRange, "test error")
	if err.Code != CodeIndexRange {
		t.Errorf("expected code %s, got %s", CodeIndexRange, err.Code)
	}
	if err.Message != "test error" {
		t.Errorf("expected message 'test error', got %s", err.Message)
	}
	if err.Err != nil {
		t.Errorf("expected nil wrapped error, got %v", err.Err)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("original error")
	err := Wrap(originalErr, CodeTransport, "send failed")

	if err.Code != CodeTransport {
		t.Errorf("expected code %s, got %s", CodeTransport, err.Code)
	}
	if err.Err != originalErr {
		t.Errorf("expected wrapped error to be original error")
	}
}

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "error without wrapped error",
			err:      New(CodeEmptyCaption, "caption is empty"),
			expected: "[EMPTY_CAPTION] caption is empty",
		},
		{
			name:     "error with wrapped error",
			err:      Wrap(errors.New("inner"), CodeTransport, "send failed"),
			expected: "[TRANSPORT_ERROR] send failed: inner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	originalErr := errors.New("original")
	err := Wrap(originalErr, CodeDatabase, "wrapped")

	if unwrapped := err.Unwrap(); unwrapped != originalErr {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, originalErr)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport error", TransportError("send failed", errors.New("timeout")), true},
		{"timeout code", New(CodeServiceTimeout, "slow"), true},
		{"target not found", TargetNotFoundError("-100123", errors.New("chat not found")), false},
		{"forbidden", ForbiddenError("-100123", errors.New("not enough rights")), false},
		{"index range", IndexRangeError(4, 2), false},
		{"unclassified error", errors.New("connection reset"), true},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTerminalForward(t *testing.T) {
	if !IsTerminalForward(TargetNotFoundError("x", nil)) {
		t.Error("expected target-not-found to be terminal")
	}
	if !IsTerminalForward(ForbiddenError("x", nil)) {
		t.Error("expected forbidden to be terminal")
	}
	if IsTerminalForward(TransportError("boom", nil)) {
		t.Error("expected transport error to be non-terminal")
	}
	if IsTerminalForward(errors.New("misc")) {
		t.Error("expected plain error to be non-terminal")
	}
}

func TestIsEmptyCaption(t *testing.T) {
	if !IsEmptyCaption(EmptyCaptionError()) {
		t.Error("expected empty caption error to be detected")
	}
	if IsEmptyCaption(errors.New("other")) {
		t.Error("expected plain error to not be empty caption")
	}
}

func TestGetErrorCode(t *testing.T) {
	if code := GetErrorCode(DuplicatePrefixError("/leech -n")); code != CodeDuplicatePrefix {
		t.Errorf("expected %s, got %s", CodeDuplicatePrefix, code)
	}
	if code := GetErrorCode(errors.New("plain")); code != CodeUnknown {
		t.Errorf("expected %s, got %s", CodeUnknown, code)
	}
}
