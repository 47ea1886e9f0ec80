package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/crmbase/customerd/internal/customer/entity"
	"github.com/crmbase/customerd/internal/pkg/clock"
	"github.com/crmbase/customerd/internal/pkg/config"
	"github.com/crmbase/customerd/internal/pkg/goerror"
	"github.com/crmbase/customerd/internal/pkg/goroutine"
	"github.com/crmbase/customerd/internal/pkg/idempotency"
	"github.com/crmbase/customerd/internal/pkg/instrument"
	"github.com/crmbase/customerd/internal/pkg/jwt"
	"github.com/crmbase/customerd/internal/pkg/validator"
)

var testNow = time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

const testConfigYAML = `
customer:
  max_page_size: 100
  default_page_size: 10
  idempotency_lock_seconds: 60
  idempotency_state_minutes: 10
`

type fakeRepoDB struct {
	customers []entity.Customer
	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	nextID      int64
	createCalls int
	updateCalls int
	deleteCalls int
	lastCreate  entity.Customer
	lastUpdate  entity.Customer
}

func (f *fakeRepoDB) GetCustomerList(_ context.Context, _ entity.Sort) ([]entity.Customer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	return f.customers, nil
}

func (f *fakeRepoDB) GetCustomerByID(_ context.Context, id int64) (*entity.Customer, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	for i := range f.customers {
		if f.customers[i].ID == id {
			cus := f.customers[i]
			return &cus, nil
		}
	}

	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) CreateCustomer(_ context.Context, cus entity.Customer) (*entity.Customer, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}

	cus.ID = f.nextID
	cus.CreatedAt = testNow
	cus.UpdatedAt = testNow
	f.lastCreate = cus

	return &cus, nil
}

func (f *fakeRepoDB) UpdateCustomer(_ context.Context, cus entity.Customer) (*entity.Customer, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}

	cus.UpdatedAt = testNow
	f.lastUpdate = cus

	return &cus, nil
}

func (f *fakeRepoDB) DeleteCustomer(_ context.Context, _ int64) error {
	f.deleteCalls++

	return f.deleteErr
}

type fakeRepoMessaging struct {
	mu      sync.Mutex
	created []CustomerCreatedEvent
	updated []CustomerUpdatedEvent
	deleted []CustomerDeletedEvent
}

func (f *fakeRepoMessaging) PublishCustomerCreated(_ context.Context, msg CustomerCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, msg)

	return nil
}

func (f *fakeRepoMessaging) PublishCustomerUpdated(_ context.Context, msg CustomerUpdatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, msg)

	return nil
}

func (f *fakeRepoMessaging) PublishCustomerDeleted(_ context.Context, msg CustomerDeletedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, msg)

	return nil
}

type fakeIdempotency struct {
	execErr  error
	lastKey  string
	execRuns int
}

func (f *fakeIdempotency) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdempotency) MarkCompleted(context.Context, string, time.Duration) error {
	return nil
}

func (f *fakeIdempotency) MarkFailed(context.Context, string, time.Duration) error {
	return nil
}

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.lastKey = key
	if f.execErr != nil {
		return f.execErr
	}
	f.execRuns++

	return fn(ctx)
}

type fixture struct {
	uc    *Usecase
	db    *fakeRepoDB
	mq    *fakeRepoMessaging
	idemp *fakeIdempotency
	g     *goroutine.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	vld, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	db := &fakeRepoDB{nextID: 1001}
	mq := &fakeRepoMessaging{}
	idemp := &fakeIdempotency{}
	g := goroutine.NewManager(10)

	uc := New(Dependency{
		RepoDB:        db,
		RepoMessaging: mq,
		Idempotency:   idemp,
		Validator:     vld,
		Config:        cfg,
		Clock:         clock.NewFixed(testNow),
		Instrument:    instrument.NewNoop(),
		Goroutine:     g,
	})

	return &fixture{uc: uc, db: db, mq: mq, idemp: idemp, g: g}
}

func authContext() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: 7, UserEmail: "ops@example.com"})
}

func assertStatusCode(t *testing.T, err error, want int) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	if gerr.StatusCode() != want {
		t.Fatalf("status code = %d, want %d (error: %v)", gerr.StatusCode(), want, err)
	}
}

func seedCustomer(id int64, name string) entity.Customer {
	return entity.Customer{
		ID:          id,
		FullName:    name,
		DateOfBirth: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		Age:         36,
		Addresses: []entity.Address{
			{Street: "1 Main St", City: "Springfield", State: "IL", PostalCode: "62701", Country: "USA"},
		},
		CreatedAt: testNow.Add(-24 * time.Hour),
		UpdatedAt: testNow.Add(-24 * time.Hour),
	}
}
