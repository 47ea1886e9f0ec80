package db

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/crmbase/customerd/internal/customer/entity"
	"github.com/crmbase/customerd/internal/pkg/goerror"
	"github.com/crmbase/customerd/internal/pkg/instrument"
	"github.com/crmbase/customerd/internal/pkg/uid"
)

var (
	testPool *pgxpool.Pool
	skipMsg  string
)

func TestMain(m *testing.M) {
	os.Exit(runMain(m))
}

func runMain(m *testing.M) int {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	ctr, err := postgres.Run(ctx, "postgres:17-alpine",
		postgres.WithDatabase("customerd_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		skipMsg = "postgres container unavailable: " + err.Error()
		return m.Run()
	}
	defer func() { _ = testcontainers.TerminateContainer(ctr) }()

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		skipMsg = "postgres connection string: " + err.Error()
		return m.Run()
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		skipMsg = "postgres pool: " + err.Error()
		return m.Run()
	}
	defer pool.Close()

	ddl, err := os.ReadFile("../../../../database/schema.sql")
	if err != nil {
		skipMsg = "read schema: " + err.Error()
		return m.Run()
	}
	if _, err := pool.Exec(ctx, string(ddl)); err != nil {
		skipMsg = "apply schema: " + err.Error()
		return m.Run()
	}

	testPool = pool

	return m.Run()
}

type seqNumberID struct{ n atomic.Int64 }

func (s *seqNumberID) Generate() int64 { return 1000 + s.n.Add(1) }

type fixedNumberID struct{ id int64 }

func (f fixedNumberID) Generate() int64 { return f.id }

func newTestDB(t *testing.T) *DB {
	t.Helper()

	return newTestDBWith(t, &seqNumberID{})
}

func newTestDBWith(t *testing.T, gen uid.NumberID) *DB {
	t.Helper()

	if testPool == nil {
		t.Skip(skipMsg)
	}

	if _, err := testPool.Exec(context.Background(), "TRUNCATE customer_addresses, customers"); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}

	return NewDB(testPool, gen, instrument.NewNoop())
}

func sampleCustomer(name string, addresses ...entity.Address) entity.Customer {
	return entity.Customer{
		FullName:    name,
		DateOfBirth: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		Age:         36,
		Addresses:   addresses,
	}
}

func sampleAddress(street string) entity.Address {
	return entity.Address{
		Street:     street,
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62704",
		Country:    "US",
	}
}

func TestCreateCustomerPersistsRecordWithOrderedAddresses(t *testing.T) {
	// Arrange
	s := newTestDB(t)
	ctx := context.Background()
	in := sampleCustomer("jane doe", sampleAddress("1 First St"), sampleAddress("2 Second St"))

	// Act
	created, err := s.CreateCustomer(ctx, in)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected a storage-assigned id, got 0")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set, got %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	got, err := s.GetCustomerByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected no error reading back, got %v", err)
	}
	if got.FullName != "jane doe" {
		t.Fatalf("expected full name %q, got %q", "jane doe", got.FullName)
	}
	if !got.DateOfBirth.Equal(in.DateOfBirth) {
		t.Fatalf("expected date of birth %v, got %v", in.DateOfBirth, got.DateOfBirth)
	}
	if got.Age != 36 {
		t.Fatalf("expected age 36, got %d", got.Age)
	}
	if len(got.Addresses) != 2 {
		t.Fatalf("expected 2 addresses, got %d", len(got.Addresses))
	}
	if got.Addresses[0].Street != "1 First St" || got.Addresses[1].Street != "2 Second St" {
		t.Fatalf("expected insertion order preserved, got %q then %q",
			got.Addresses[0].Street, got.Addresses[1].Street)
	}
}

func TestCreateCustomerDuplicateIDReturnsConflict(t *testing.T) {
	// Arrange
	s := newTestDBWith(t, fixedNumberID{id: 77001})
	ctx := context.Background()

	if _, err := s.CreateCustomer(ctx, sampleCustomer("first holder")); err != nil {
		t.Fatalf("expected first create to succeed, got %v", err)
	}

	// Act
	_, err := s.CreateCustomer(ctx, sampleCustomer("second holder"))

	// Assert
	if !errors.Is(err, goerror.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestGetCustomerByIDNotFound(t *testing.T) {
	// Arrange
	s := newTestDB(t)

	// Act
	_, err := s.GetCustomerByID(context.Background(), 424242)

	// Assert
	if !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestUpdateCustomerReplacesAddressesWholesale(t *testing.T) {
	// Arrange
	s := newTestDB(t)
	ctx := context.Background()

	created, err := s.CreateCustomer(ctx,
		sampleCustomer("jane doe", sampleAddress("1 First St"), sampleAddress("2 Second St")))
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	upd := *created
	upd.FullName = "janet doe"
	upd.Addresses = []entity.Address{sampleAddress("9 Ninth Ave")}

	// Act
	updated, err := s.UpdateCustomer(ctx, upd)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("expected updated_at to advance, got %v before %v", updated.UpdatedAt, created.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected created_at to be preserved, got %v want %v", updated.CreatedAt, created.CreatedAt)
	}

	got, err := s.GetCustomerByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected no error reading back, got %v", err)
	}
	if got.FullName != "janet doe" {
		t.Fatalf("expected full name %q, got %q", "janet doe", got.FullName)
	}
	if len(got.Addresses) != 1 {
		t.Fatalf("expected old addresses replaced by exactly 1, got %d", len(got.Addresses))
	}
	if got.Addresses[0].Street != "9 Ninth Ave" {
		t.Fatalf("expected street %q, got %q", "9 Ninth Ave", got.Addresses[0].Street)
	}
}

func TestUpdateCustomerNotFound(t *testing.T) {
	// Arrange
	s := newTestDB(t)
	upd := sampleCustomer("ghost writer")
	upd.ID = 555555

	// Act
	_, err := s.UpdateCustomer(context.Background(), upd)

	// Assert
	if !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeleteCustomerNotFound(t *testing.T) {
	// Arrange
	s := newTestDB(t)

	// Act
	err := s.DeleteCustomer(context.Background(), 999999)

	// Assert
	if !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeleteCustomerRemovesRecordAndAddresses(t *testing.T) {
	// Arrange
	s := newTestDB(t)
	ctx := context.Background()

	created, err := s.CreateCustomer(ctx, sampleCustomer("jane doe", sampleAddress("1 First St")))
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	// Act
	err = s.DeleteCustomer(ctx, created.ID)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := s.GetCustomerByID(ctx, created.ID); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("expected record to be gone, got %v", err)
	}

	var remaining int
	row := testPool.QueryRow(ctx, "SELECT count(*) FROM customer_addresses WHERE customer_id = $1", created.ID)
	if err := row.Scan(&remaining); err != nil {
		t.Fatalf("failed to count addresses: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected 0 addresses left, got %d", remaining)
	}
}

func TestGetCustomerListSortsWithStableIDTiebreak(t *testing.T) {
	// Arrange
	s := newTestDB(t)
	ctx := context.Background()

	first, err := s.CreateCustomer(ctx, sampleCustomer("bob stone", sampleAddress("1 First St")))
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	second, err := s.CreateCustomer(ctx, sampleCustomer("bob stone", sampleAddress("2 Second St")))
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if _, err := s.CreateCustomer(ctx, sampleCustomer("alice reed", sampleAddress("3 Third St"))); err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	// Act
	customers, err := s.GetCustomerList(ctx, entity.Sort{
		Field: entity.SortFieldFullName,
		Order: entity.SortOrderAsc,
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(customers) != 3 {
		t.Fatalf("expected 3 customers, got %d", len(customers))
	}
	if customers[0].FullName != "alice reed" {
		t.Fatalf("expected %q first, got %q", "alice reed", customers[0].FullName)
	}
	if customers[1].ID != first.ID || customers[2].ID != second.ID {
		t.Fatalf("expected equal names ordered by id %d then %d, got %d then %d",
			first.ID, second.ID, customers[1].ID, customers[2].ID)
	}
	for i, c := range customers {
		if len(c.Addresses) != 1 {
			t.Fatalf("expected 1 address on customer %d, got %d", i, len(c.Addresses))
		}
	}
}
