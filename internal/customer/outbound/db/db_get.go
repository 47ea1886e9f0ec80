package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/crmbase/customerd/internal/customer/entity"
)

func (s *DB) GetCustomerList(ctx context.Context, sort entity.Sort) (_ []entity.Customer, err error) {
	ctx, span := s.startSpan(ctx, "GetCustomerList")
	defer func() { s.endSpan(span, err) }()

	orderBy := sort.Field.Column() + " " + string(sort.Order)
	if sort.Field != entity.SortFieldID {
		// stable order for equal sort keys
		orderBy += ", id asc"
	}

	query, args, err := s.sq.
		Select("id", "full_name", "date_of_birth", "age", "created_at", "updated_at").
		From("customers").
		OrderBy(orderBy).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	customers := make([]entity.Customer, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var c entity.Customer
		if err = rows.Scan(&c.ID, &c.FullName, &c.DateOfBirth, &c.Age, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, s.mapError(err)
		}
		customers = append(customers, c)
		ids = append(ids, c.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	if len(ids) == 0 {
		return customers, nil
	}

	addresses, err := s.getAddressesByCustomerIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		customers[i].Addresses = addresses[customers[i].ID]
	}

	return customers, nil
}

func (s *DB) GetCustomerByID(ctx context.Context, id int64) (_ *entity.Customer, err error) {
	ctx, span := s.startSpan(ctx, "GetCustomerByID")
	defer func() { s.endSpan(span, err) }()

	query, args, err := s.sq.
		Select("id", "full_name", "date_of_birth", "age", "created_at", "updated_at").
		From("customers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var c entity.Customer
	err = s.conn.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.FullName, &c.DateOfBirth, &c.Age, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	addresses, err := s.getAddressesByCustomerIDs(ctx, []int64{c.ID})
	if err != nil {
		return nil, err
	}
	c.Addresses = addresses[c.ID]

	return &c, nil
}

func (s *DB) getAddressesByCustomerIDs(ctx context.Context, ids []int64) (map[int64][]entity.Address, error) {
	query, args, err := s.sq.
		Select("customer_id", "street", "city", "state", "postal_code", "country").
		From("customer_addresses").
		Where(sq.Eq{"customer_id": ids}).
		OrderBy("customer_id asc", "position asc").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	out := make(map[int64][]entity.Address)
	for rows.Next() {
		var customerID int64
		var a entity.Address
		if err := rows.Scan(&customerID, &a.Street, &a.City, &a.State, &a.PostalCode, &a.Country); err != nil {
			return nil, s.mapError(err)
		}
		out[customerID] = append(out[customerID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return out, nil
}
