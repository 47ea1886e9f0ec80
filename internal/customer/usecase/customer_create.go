package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/crmbase/customerd/internal/customer/entity"
	"github.com/crmbase/customerd/internal/pkg/goerror"
	"github.com/crmbase/customerd/internal/pkg/idempotency"
)

type (
	CustomerCreateInput struct {
		FullName    string         `validate:"required,min=2,max=100,alphaspace"`
		DateOfBirth string         `validate:"required,dateonly"`
		Addresses   []AddressInput `validate:"omitempty,dive"`

		// IdempotencyKey is the optional Idempotency-Key header value.
		IdempotencyKey string `validate:"-"`
	}
)

func (s *Usecase) CustomerCreate(ctx context.Context, in CustomerCreateInput) (*entity.Customer, error) {
	ctx, span := s.startSpan(ctx, "CustomerCreate")
	defer span.End()

	in.FullName = normalizeFullName(in.FullName)
	in.Addresses = normalizeAddresses(in.Addresses)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	dob, err := s.parseDateOfBirth(in.DateOfBirth)
	if err != nil {
		return nil, err
	}

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	newCustomer := entity.Customer{
		FullName:    in.FullName,
		DateOfBirth: dob,
		Age:         entity.AgeYears(dob, s.clock.Now()),
		Addresses:   toEntityAddresses(in.Addresses),
	}

	var created *entity.Customer
	persist := func(ctx context.Context) error {
		var perr error
		created, perr = s.repoDB.CreateCustomer(ctx, newCustomer)
		return perr
	}

	if in.IdempotencyKey != "" {
		err = s.idemp.Exec(ctx, "customer:create:"+in.IdempotencyKey, persist,
			idempotency.WithLockDuration(s.cfg.GetSecond("customer.idempotency_lock_seconds")),
			idempotency.WithStateTTL(s.cfg.GetMinute("customer.idempotency_state_minutes")),
		)
		if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
			slog.WarnContext(ctx, "duplicate customer create request", "idempotency_key", in.IdempotencyKey)
			return nil, goerror.NewBusiness("a create request with this idempotency key was already accepted", goerror.CodeConflict)
		}
	} else {
		err = persist(ctx)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create customer", "full_name", in.FullName, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		return s.repoMessaging.PublishCustomerCreated(ctx, CustomerCreatedEvent{
			CustomerID: created.ID,
			FullName:   created.FullName,
		})
	})

	return created, nil
}
