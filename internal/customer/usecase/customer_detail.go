package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/crmbase/customerd/internal/customer/entity"
	"github.com/crmbase/customerd/internal/pkg/goerror"
)

type (
	CustomerDetailInput struct {
		ID int64 `validate:"required,gt=0"`
	}
)

func (s *Usecase) CustomerDetail(ctx context.Context, in CustomerDetailInput) (*entity.Customer, error) {
	ctx, span := s.startSpan(ctx, "CustomerDetail")
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

	return customer, nil
}
