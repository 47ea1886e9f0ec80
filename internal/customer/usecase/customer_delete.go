package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/crmbase/customerd/internal/pkg/goerror"
)

type (
	CustomerDeleteInput struct {
		ID int64 `validate:"required,gt=0"`
	}

	CustomerDeleteOutput struct {
		ID int64
	}
)

func (s *Usecase) CustomerDelete(ctx context.Context, in CustomerDeleteInput) (*CustomerDeleteOutput, error) {
	ctx, span := s.startSpan(ctx, "CustomerDelete")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	customer, err := s.repoDB.GetCustomerByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "customer not found", "customer_id", in.ID)
		return nil, goerror.NewBusiness("customer not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get customer by id", "customer_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.DeleteCustomer(ctx, customer.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete customer", "customer_id", customer.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		return s.repoMessaging.PublishCustomerDeleted(ctx, CustomerDeletedEvent{CustomerID: customer.ID})
	})

	return &CustomerDeleteOutput{ID: customer.ID}, nil
}
