package inbound

import (
	"context"

	"github.com/crmbase/customerd/internal/customer/entity"
	"github.com/crmbase/customerd/internal/customer/usecase"
	"github.com/crmbase/customerd/internal/pkg/router"
)

type uc interface {
	CustomerList(ctx context.Context, in usecase.CustomerListInput) (*usecase.CustomerListOutput, error)
	CustomerDetail(ctx context.Context, in usecase.CustomerDetailInput) (*entity.Customer, error)
	CustomerCreate(ctx context.Context, in usecase.CustomerCreateInput) (*entity.Customer, error)
	CustomerUpdate(ctx context.Context, in usecase.CustomerUpdateInput) (*entity.Customer, error)
	CustomerDelete(ctx context.Context, in usecase.CustomerDeleteInput) (*usecase.CustomerDeleteOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Customer Directory (need authenticated)
	r.GET("/api/v1/customers", end.CustomerList)
	r.GET("/api/v1/customers/:id", end.CustomerDetail)
	r.POST("/api/v1/customers", end.CustomerCreate)
	r.PUT("/api/v1/customers/:id", end.CustomerUpdate)
	r.DELETE("/api/v1/customers/:id", end.CustomerDelete)
}
