package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/crmbase/customerd/internal/customer/entity"
)

func TestCustomerDeleteInvalidID(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	_, err := f.uc.CustomerDelete(authContext(), CustomerDeleteInput{ID: 0})

	// Assert
	if err == nil {
		t.Fatalf("expected error for invalid id")
	}
	assertStatusCode(t, err, http.StatusUnprocessableEntity)
}

func TestCustomerDeleteUnauthenticated(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.db.customers = []entity.Customer{seedCustomer(1, "Jane Doe")}

	// Act
	_, err := f.uc.CustomerDelete(context.Background(), CustomerDeleteInput{ID: 1})

	// Assert
	if err == nil {
		t.Fatalf("expected error for unauthenticated request")
	}
	assertStatusCode(t, err, http.StatusUnauthorized)
	if f.db.deleteCalls != 0 {
		t.Fatalf("repository must not be called, calls=%d", f.db.deleteCalls)
	}
}

func TestCustomerDeleteNotFound(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	_, err := f.uc.CustomerDelete(authContext(), CustomerDeleteInput{ID: 404})

	// Assert
	if err == nil {
		t.Fatalf("expected error for unknown customer")
	}
	assertStatusCode(t, err, http.StatusNotFound)
	if f.db.deleteCalls != 0 {
		t.Fatalf("delete must not be attempted for a missing customer, calls=%d", f.db.deleteCalls)
	}
}

func TestCustomerDeleteSuccess(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.db.customers = []entity.Customer{seedCustomer(9, "Jane Doe")}

	// Act
	out, err := f.uc.CustomerDelete(authContext(), CustomerDeleteInput{ID: 9})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != 9 {
		t.Fatalf("expected deleted id 9, got %d", out.ID)
	}
	if f.db.deleteCalls != 1 {
		t.Fatalf("expected one delete call, got %d", f.db.deleteCalls)
	}

	if err := f.g.Wait(); err != nil {
		t.Fatalf("unexpected goroutine error: %v", err)
	}
	if len(f.mq.deleted) != 1 || f.mq.deleted[0].CustomerID != 9 {
		t.Fatalf("expected deleted event for 9, got %+v", f.mq.deleted)
	}
}
