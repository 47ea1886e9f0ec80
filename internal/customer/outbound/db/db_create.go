package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/crmbase/customerd/internal/customer/entity"
)

func (s *DB) CreateCustomer(ctx context.Context, cus entity.Customer) (_ *entity.Customer, err error) {
	ctx, span := s.startSpan(ctx, "CreateCustomer")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	cus.ID = s.uid.Generate()

	query, args, err := s.sq.
		Insert("customers").
		Columns("id", "full_name", "date_of_birth", "age").
		Values(cus.ID, cus.FullName, cus.DateOfBirth, cus.Age).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	if err = tx.QueryRow(ctx, query, args...).Scan(&cus.CreatedAt, &cus.UpdatedAt); err != nil {
		return nil, s.mapError(err)
	}

	if err = s.insertAddresses(ctx, tx, cus.ID, cus.Addresses); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, s.mapError(err)
	}

	return &cus, nil
}

func (s *DB) insertAddresses(ctx context.Context, tx pgx.Tx, customerID int64, addresses []entity.Address) error {
	if len(addresses) == 0 {
		return nil
	}

	builder := s.sq.
		Insert("customer_addresses").
		Columns("customer_id", "position", "street", "city", "state", "postal_code", "country")
	for i, a := range addresses {
		builder = builder.Values(customerID, i, a.Street, a.City, a.State, a.PostalCode, a.Country)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return s.mapError(err)
	}

	return nil
}
