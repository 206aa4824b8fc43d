package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"tickoff/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "Username already exists.",
	}

	if f.Error() != "Username already exists." {
		t.Errorf("expected error message to be 'Username already exists.', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("Username already exists."),
			code:    http.StatusBadRequest,
			message: "Username already exists.",
		},
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("name is required")),
			code:    http.StatusBadRequest,
			message: "name is required",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("Invalid username or password."),
			code:    http.StatusUnauthorized,
			message: "Invalid username or password.",
		},
		{
			name:    "not found",
			err:     failure.NotFound("Todo item not found."),
			code:    http.StatusNotFound,
			message: "Todo item not found.",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("Todo item was modified concurrently."),
			code:    http.StatusConflict,
			message: "Todo item was modified concurrently.",
		},
		{
			name:    "internal error",
			err:     failure.InternalError(errors.New("database connection failed")),
			code:    http.StatusInternalServerError,
			message: "database connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, f.Code)
			}

			if f.Message != tt.message {
				t.Errorf("expected message to be %q, got %q", tt.message, f.Message)
			}
		})
	}
}

func TestNilInputs(t *testing.T) {
	if err := failure.BadRequest(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	if err := failure.InternalError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("failed to update todo: %w", failure.Conflict("stale")),
			expected: http.StatusConflict,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	if msg := failure.Message(failure.NotFound("Todo item not found.")); msg != "Todo item not found." {
		t.Errorf("expected failure message, got %q", msg)
	}

	if msg := failure.Message(errors.New("pq: connection refused")); msg != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("expected generic message for internal errors, got %q", msg)
	}
}
