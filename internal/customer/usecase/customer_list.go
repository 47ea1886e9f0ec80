package usecase

import (
	"context"
	"log/slog"

	"github.com/crmbase/customerd/internal/customer/entity"
	"github.com/crmbase/customerd/internal/pkg/goerror"
)

const (
	defaultPageSize int32 = 10
	defaultMaxSize  int32 = 100
)

type CustomerListInput struct {
	Page      int32
	Size      int32
	SortBy    string // value already trimmed
	SortOrder string // value is: `asc` or `desc`; already trimmed
}

type CustomerListOutput struct {
	Page       int32
	Size       int32
	Total      int64
	TotalPages int64
	Customers  []entity.Customer
}

func (s *Usecase) CustomerList(ctx context.Context, in CustomerListInput) (*CustomerListOutput, error) {
	ctx, span := s.startSpan(ctx, "CustomerList")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	maxSize := s.cfg.GetInt32("customer.max_page_size")
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	if in.Size == 0 {
		in.Size = s.cfg.GetInt32("customer.default_page_size")
		if in.Size <= 0 {
			in.Size = defaultPageSize
		}
	}
	if in.Size < 1 || in.Size > maxSize {
		return nil, goerror.NewInvalidInput(nil, "size", "size must be between 1 and the configured maximum")
	}

	sortField, ok := entity.ParseSortField(in.SortBy)
	if !ok {
		return nil, goerror.NewInvalidInput(nil, "sort_by", "sort_by is not a sortable field")
	}
	sortOrder, ok := entity.ParseSortOrder(in.SortOrder)
	if !ok {
		return nil, goerror.NewInvalidInput(nil, "sort_order", "sort_order must be asc or desc")
	}

	customers, err := s.repoDB.GetCustomerList(ctx, entity.Sort{Field: sortField, Order: sortOrder})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list customers", "error", err)
		return nil, goerror.NewServer(err)
	}

	page := max(in.Page, 1)
	total := int64(len(customers))

	// slice the sorted collection for the requested page
	start := int64(page-1) * int64(in.Size)
	end := min(start+int64(in.Size), total)
	items := []entity.Customer{}
	if start < total {
		items = customers[start:end]
	}

	return &CustomerListOutput{
		Page:       page,
		Size:       in.Size,
		Total:      total,
		TotalPages: entity.TotalPages(total, in.Size),
		Customers:  items,
	}, nil
}
