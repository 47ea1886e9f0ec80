package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/crmbase/customerd/internal/customer/entity"
	"github.com/crmbase/customerd/internal/pkg/goerror"
)

type CustomerUpdateInput struct {
	ID int64 `validate:"required,gt=0"`

	// BodyID is the optional id carried in the request body. When present it
	// must match ID.
	BodyID *int64 `validate:"-"`

	FullName    *string         `validate:"omitempty,min=2,max=100,alphaspace"`
	DateOfBirth *string         `validate:"omitempty,dateonly"`
	Addresses   *[]AddressInput `validate:"omitempty,dive"`
}

func (s *Usecase) CustomerUpdate(ctx context.Context, in CustomerUpdateInput) (*entity.Customer, error) {
	ctx, span := s.startSpan(ctx, "CustomerUpdate")
	defer span.End()

	if in.FullName != nil {
		normalized := normalizeFullName(*in.FullName)
		in.FullName = &normalized
	}
	if in.Addresses != nil {
		normalized := normalizeAddresses(*in.Addresses)
		in.Addresses = &normalized
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.BodyID != nil && *in.BodyID != in.ID {
		return nil, goerror.NewInvalidInput(nil, "id", "id in body must match id in path")
	}

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	current, err := s.repoDB.GetCustomerByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "customer not found", "customer_id", in.ID)
		return nil, goerror.NewBusiness("customer not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get customer by id", "customer_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	updated := *current
	changed := false

	if in.FullName != nil && *in.FullName != current.FullName {
		updated.FullName = *in.FullName
		changed = true
	}

	if in.DateOfBirth != nil {
		dob, err := s.parseDateOfBirth(*in.DateOfBirth)
		if err != nil {
			return nil, err
		}

		if !dob.Equal(current.DateOfBirth) {
			updated.DateOfBirth = dob
			updated.Age = entity.AgeYears(dob, s.clock.Now())
			changed = true
		}
	}

	if in.Addresses != nil {
		newAddresses := toEntityAddresses(*in.Addresses)
		if !slices.Equal(newAddresses, current.Addresses) {
			updated.Addresses = newAddresses
			changed = true
		}
	}

	if !changed {
		return current, nil
	}

	persisted, err := s.repoDB.UpdateCustomer(ctx, updated)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "customer disappeared before update", "customer_id", in.ID)
		return nil, goerror.NewBusiness("customer not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update customer", "customer_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		return s.repoMessaging.PublishCustomerUpdated(ctx, CustomerUpdatedEvent{CustomerID: persisted.ID})
	})

	return persisted, nil
}
