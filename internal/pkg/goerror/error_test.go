package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "server error", err: NewServer(errors.New("boom")), want: http.StatusInternalServerError},
		{name: "invalid format", err: NewInvalidFormat(), want: http.StatusBadRequest},
		{name: "invalid input", err: NewInvalidInput(errors.New("bad")), want: http.StatusUnprocessableEntity},
		{name: "not found", err: NewBusiness("missing", CodeNotFound), want: http.StatusNotFound},
		{name: "conflict", err: NewBusiness("duplicate", CodeConflict), want: http.StatusConflict},
		{name: "unauthorized", err: NewBusiness("denied", CodeUnauthorized), want: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gerr *Error
			if !errors.As(tc.err, &gerr) {
				t.Fatalf("expected *Error, got %T", tc.err)
			}
			if gerr.StatusCode() != tc.want {
				t.Fatalf("StatusCode() = %d, want %d", gerr.StatusCode(), tc.want)
			}
		})
	}
}

func TestNewInvalidInputFieldPairs(t *testing.T) {
	// Arrange
	err := NewInvalidInput(nil, "size", "size must be between 1 and 100")

	// Assert
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if got := gerr.Fields()["size"]; got != "size must be between 1 and 100" {
		t.Fatalf("unexpected field message %q", got)
	}
	if gerr.StatusCode() != http.StatusUnprocessableEntity {
		t.Fatalf("StatusCode() = %d, want 422", gerr.StatusCode())
	}
}

func TestErrorUnwrap(t *testing.T) {
	// Arrange
	underlying := errors.New("connection reset")
	err := NewServer(underlying)

	// Assert
	if !errors.Is(err, underlying) {
		t.Fatalf("expected wrapped error to match underlying")
	}
	if err.Error() != "connection reset" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
