package router

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func paramRequest(t *testing.T, key, value string) *Request {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/customers/"+value, nil)
	ctx := context.WithValue(req.Context(), httprouter.ParamsKey, httprouter.Params{{Key: key, Value: value}})

	return &Request{Request: req.WithContext(ctx)}
}

func TestGetParamInt64(t *testing.T) {
	// Arrange
	r := paramRequest(t, "id", "42")

	// Act
	got, err := r.GetParamInt64("id")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("GetParamInt64 = %d, want 42", got)
	}
}

func TestGetParamInt64Invalid(t *testing.T) {
	// Arrange
	r := paramRequest(t, "id", "abc")

	// Act
	_, err := r.GetParamInt64("id")

	// Assert
	if err == nil {
		t.Fatalf("expected error for non numeric param")
	}
}

func TestGetQueryInt32(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    int32
		wantErr bool
	}{
		{name: "present", url: "/api/v1/customers?page=3", want: 3},
		{name: "absent yields zero", url: "/api/v1/customers", want: 0},
		{name: "trimmed", url: "/api/v1/customers?page=%202%20", want: 2},
		{name: "not a number", url: "/api/v1/customers?page=x", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := &Request{Request: httptest.NewRequest("GET", tc.url, nil)}

			// Act
			got, err := r.GetQueryInt32("page")

			// Assert
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("GetQueryInt32 = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDecodeBody(t *testing.T) {
	type payload struct {
		FullName string `json:"full_name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid body", body: `{"full_name":"Jane Doe"}`},
		{name: "unknown field", body: `{"full_name":"Jane Doe","extra":true}`, wantErr: true},
		{name: "trailing data", body: `{"full_name":"Jane Doe"}{}`, wantErr: true},
		{name: "malformed json", body: `{"full_name":`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			req := httptest.NewRequest("POST", "/api/v1/customers", strings.NewReader(tc.body))
			r := &Request{Request: req}

			// Act
			var dst payload
			err := r.DecodeBody(&dst)

			// Assert
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for body %q", tc.body)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dst.FullName != "Jane Doe" {
				t.Fatalf("decoded full_name = %q", dst.FullName)
			}
		})
	}
}
