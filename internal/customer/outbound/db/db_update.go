package db

import (
	"context"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/crmbase/customerd/internal/customer/entity"
)

// UpdateCustomer persists the customer row and replaces its address
// collection atomically.
func (s *DB) UpdateCustomer(ctx context.Context, cus entity.Customer) (_ *entity.Customer, err error) {
	ctx, span := s.startSpan(ctx, "UpdateCustomer")
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

	query, args, err := s.sq.
		Update("customers").
		Set("full_name", cus.FullName).
		Set("date_of_birth", cus.DateOfBirth).
		Set("age", cus.Age).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": cus.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	if err = tx.QueryRow(ctx, query, args...).Scan(&cus.CreatedAt, &cus.UpdatedAt); err != nil {
		return nil, s.mapError(err)
	}

	delQuery, delArgs, err := s.sq.
		Delete("customer_addresses").
		Where(sq.Eq{"customer_id": cus.ID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	if _, err = tx.Exec(ctx, delQuery, delArgs...); err != nil {
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
