package db

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/crmbase/customerd/internal/pkg/goerror"
	"github.com/crmbase/customerd/internal/pkg/instrument"
	"github.com/crmbase/customerd/internal/pkg/uid"
)

type DB struct {
	conn *pgxpool.Pool
	uid  uid.NumberID
	ins  instrument.Instrumentation
	sq   sq.StatementBuilderType
}

func NewDB(conn *pgxpool.Pool, uid uid.NumberID, ins instrument.Instrumentation) *DB {
	return &DB{
		conn: conn,
		uid:  uid,
		ins:  ins,
		sq:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// - 23505 unique violation → goerror.ErrConflict
// - no rows → goerror.ErrNotFound
func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("customer.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
