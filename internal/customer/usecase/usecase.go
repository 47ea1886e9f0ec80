package usecase

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

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

type CustomerCreatedEvent struct {
	CustomerID int64
	FullName   string
}

type CustomerUpdatedEvent struct {
	CustomerID int64
}

type CustomerDeletedEvent struct {
	CustomerID int64
}

type repoMessaging interface {
	PublishCustomerCreated(ctx context.Context, msg CustomerCreatedEvent) error
	PublishCustomerUpdated(ctx context.Context, msg CustomerUpdatedEvent) error
	PublishCustomerDeleted(ctx context.Context, msg CustomerDeletedEvent) error
}

type repoDB interface {
	GetCustomerList(ctx context.Context, sort entity.Sort) ([]entity.Customer, error)
	GetCustomerByID(ctx context.Context, id int64) (*entity.Customer, error)

	CreateCustomer(ctx context.Context, cus entity.Customer) (*entity.Customer, error)
	UpdateCustomer(ctx context.Context, cus entity.Customer) (*entity.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("customer.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

// normalizeFullName trims and collapses inner whitespace runs to single spaces.
func normalizeFullName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// parseDateOfBirth parses a YYYY-MM-DD value and rejects future dates.
func (s *Usecase) parseDateOfBirth(raw string) (time.Time, error) {
	dob, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, goerror.NewInvalidInput(nil,
			"date_of_birth", "date_of_birth must be a date in YYYY-MM-DD format")
	}

	if dob.After(s.clock.Now()) {
		return time.Time{}, goerror.NewInvalidInput(nil,
			"date_of_birth", "date_of_birth cannot be in the future")
	}

	return dob, nil
}

// AddressInput is a single address entry in create and update requests.
type AddressInput struct {
	Street     string `validate:"required,min=1,max=200"`
	City       string `validate:"required,min=1,max=100"`
	State      string `validate:"omitempty,max=100"`
	PostalCode string `validate:"required,postalcode"`
	Country    string `validate:"required,min=2,max=100"`
}

func normalizeAddresses(in []AddressInput) []AddressInput {
	out := make([]AddressInput, 0, len(in))
	for _, a := range in {
		out = append(out, AddressInput{
			Street:     strings.TrimSpace(a.Street),
			City:       strings.TrimSpace(a.City),
			State:      strings.TrimSpace(a.State),
			PostalCode: strings.TrimSpace(a.PostalCode),
			Country:    strings.TrimSpace(a.Country),
		})
	}

	return out
}

func toEntityAddresses(in []AddressInput) []entity.Address {
	out := make([]entity.Address, 0, len(in))
	for _, a := range in {
		out = append(out, entity.Address{
			Street:     a.Street,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Country:    a.Country,
		})
	}

	return out
}
