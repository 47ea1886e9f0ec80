package inbound

import (
	"github.com/samber/lo"

	"github.com/crmbase/customerd/internal/customer/entity"
	"github.com/crmbase/customerd/internal/customer/usecase"
	"github.com/crmbase/customerd/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the customer directory.
type HTTPEndpoint struct {
	uc uc
}

func toAddressInput(a AddressPayload) usecase.AddressInput {
	return usecase.AddressInput{
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// CustomerList returns a page of customers sorted by the requested field.
func (h *HTTPEndpoint) CustomerList(r *router.Request) (any, error) {
	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CustomerList(r.Context(), usecase.CustomerListInput{
		Page:      page,
		Size:      size,
		SortBy:    r.GetQuery("sort_by"),
		SortOrder: r.GetQuery("sort_order"),
	})
	if err != nil {
		return nil, err
	}

	return CustomersResponse{
		Customers: lo.Map(resp.Customers, func(c entity.Customer, _ int) CustomerResponse {
			return toCustomerResponse(c)
		}),
		total:      resp.Total,
		totalPages: resp.TotalPages,
		size:       resp.Size,
		page:       resp.Page,
	}, nil
}

// CustomerDetail returns a single customer by id.
func (h *HTTPEndpoint) CustomerDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CustomerDetail(r.Context(), usecase.CustomerDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return CustomerDetailResponse{Customer: toCustomerResponse(*resp)}, nil
}

// CustomerCreate creates a customer from the request body.
func (h *HTTPEndpoint) CustomerCreate(r *router.Request) (any, error) {
	var req CustomerCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CustomerCreate(r.Context(), usecase.CustomerCreateInput{
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		Addresses: lo.Map(req.Addresses, func(a AddressPayload, _ int) usecase.AddressInput {
			return toAddressInput(a)
		}),
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return nil, err
	}

	return CustomerCreateResponse{CustomerResponse: toCustomerResponse(*resp)}, nil
}

// CustomerUpdate applies a partial update to a customer.
func (h *HTTPEndpoint) CustomerUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req CustomerUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	in := usecase.CustomerUpdateInput{
		ID:          id,
		BodyID:      req.ID,
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
	}
	if req.Addresses != nil {
		addresses := lo.Map(*req.Addresses, func(a AddressPayload, _ int) usecase.AddressInput {
			return toAddressInput(a)
		})
		in.Addresses = &addresses
	}

	resp, err := h.uc.CustomerUpdate(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return CustomerUpdateResponse{CustomerResponse: toCustomerResponse(*resp)}, nil
}

// CustomerDelete removes a customer by id.
func (h *HTTPEndpoint) CustomerDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CustomerDelete(r.Context(), usecase.CustomerDeleteInput{ID: id})
	if err != nil {
		return nil, err
	}

	return CustomerDeleteResponse{ID: resp.ID}, nil
}
