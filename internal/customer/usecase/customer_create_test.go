package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/crmbase/customerd/internal/pkg/idempotency"
)

func TestCustomerCreateInvalidInputSkipsRepository(t *testing.T) {
	// Arrange
	f := newFixture(t)

	tests := []struct {
		name string
		in   CustomerCreateInput
	}{
		{
			name: "missing full name",
			in:   CustomerCreateInput{DateOfBirth: "1990-03-14"},
		},
		{
			name: "full name with digits",
			in:   CustomerCreateInput{FullName: "Jane D0e", DateOfBirth: "1990-03-14"},
		},
		{
			name: "single character name",
			in:   CustomerCreateInput{FullName: "J", DateOfBirth: "1990-03-14"},
		},
		{
			name: "malformed date",
			in:   CustomerCreateInput{FullName: "Jane Doe", DateOfBirth: "14-03-1990"},
		},
		{
			name: "missing address fields",
			in: CustomerCreateInput{
				FullName:    "Jane Doe",
				DateOfBirth: "1990-03-14",
				Addresses:   []AddressInput{{Street: "1 Main St"}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, err := f.uc.CustomerCreate(authContext(), tc.in)

			// Assert
			if err == nil {
				t.Fatalf("expected validation error")
			}
			assertStatusCode(t, err, http.StatusUnprocessableEntity)
			if f.db.createCalls != 0 {
				t.Fatalf("repository must not be called on validation failure, calls=%d", f.db.createCalls)
			}
		})
	}
}

func TestCustomerCreateFutureDateOfBirth(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	_, err := f.uc.CustomerCreate(authContext(), CustomerCreateInput{
		FullName:    "Jane Doe",
		DateOfBirth: "2027-01-01",
	})

	// Assert
	if err == nil {
		t.Fatalf("expected error for future date of birth")
	}
	assertStatusCode(t, err, http.StatusUnprocessableEntity)
	if f.db.createCalls != 0 {
		t.Fatalf("repository must not be called, calls=%d", f.db.createCalls)
	}
}

func TestCustomerCreateUnauthenticated(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	_, err := f.uc.CustomerCreate(context.Background(), CustomerCreateInput{
		FullName:    "Jane Doe",
		DateOfBirth: "1990-03-14",
	})

	// Assert
	if err == nil {
		t.Fatalf("expected error for unauthenticated request")
	}
	assertStatusCode(t, err, http.StatusUnauthorized)
	if f.db.createCalls != 0 {
		t.Fatalf("repository must not be called, calls=%d", f.db.createCalls)
	}
}

func TestCustomerCreateSuccess(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	out, err := f.uc.CustomerCreate(authContext(), CustomerCreateInput{
		FullName:    "  jane   van doe ",
		DateOfBirth: "1990-12-01",
		Addresses: []AddressInput{
			{Street: " 1 Main St ", City: "Springfield", State: "IL", PostalCode: "62701", Country: "USA"},
		},
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != 1001 {
		t.Fatalf("expected storage assigned id 1001, got %d", out.ID)
	}
	if out.FullName != "jane van doe" {
		t.Fatalf("expected normalized full name, got %q", out.FullName)
	}
	if out.Age != 35 {
		t.Fatalf("expected derived age 35, got %d", out.Age)
	}
	if len(out.Addresses) != 1 || out.Addresses[0].Street != "1 Main St" {
		t.Fatalf("expected trimmed address, got %+v", out.Addresses)
	}

	if err := f.g.Wait(); err != nil {
		t.Fatalf("unexpected goroutine error: %v", err)
	}
	if len(f.mq.created) != 1 || f.mq.created[0].CustomerID != 1001 {
		t.Fatalf("expected created event for 1001, got %+v", f.mq.created)
	}
}

func TestCustomerCreateWithIdempotencyKey(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	out, err := f.uc.CustomerCreate(authContext(), CustomerCreateInput{
		FullName:       "Jane Doe",
		DateOfBirth:    "1990-03-14",
		IdempotencyKey: "req-abc-123",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == nil || out.ID != 1001 {
		t.Fatalf("expected created customer, got %+v", out)
	}
	if f.idemp.lastKey != "customer:create:req-abc-123" {
		t.Fatalf("unexpected idempotency key %q", f.idemp.lastKey)
	}
	if f.db.createCalls != 1 {
		t.Fatalf("expected one create call, got %d", f.db.createCalls)
	}
}

func TestCustomerCreateDuplicateIdempotencyKey(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.idemp.execErr = idempotency.ErrAlreadyCompleted

	// Act
	_, err := f.uc.CustomerCreate(authContext(), CustomerCreateInput{
		FullName:       "Jane Doe",
		DateOfBirth:    "1990-03-14",
		IdempotencyKey: "req-abc-123",
	})

	// Assert
	if err == nil {
		t.Fatalf("expected conflict for duplicate idempotency key")
	}
	assertStatusCode(t, err, http.StatusConflict)
	if f.db.createCalls != 0 {
		t.Fatalf("repository must not be called, calls=%d", f.db.createCalls)
	}
}
