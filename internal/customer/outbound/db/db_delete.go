package db

import (
	"context"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/crmbase/customerd/internal/pkg/goerror"
)

func (s *DB) DeleteCustomer(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteCustomer")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	delAddrQuery, delAddrArgs, err := s.sq.
		Delete("customer_addresses").
		Where(sq.Eq{"customer_id": id}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, delAddrQuery, delAddrArgs...); err != nil {
		return s.mapError(err)
	}

	delQuery, delArgs, err := s.sq.
		Delete("customers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, delQuery, delArgs...)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return s.mapError(tx.Commit(ctx))
}
