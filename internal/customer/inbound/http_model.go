package inbound

import (
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/crmbase/customerd/internal/customer/entity"
)

type AddressPayload struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type CustomerResponse struct {
	ID          int64            `json:"id,string"`
	FullName    string           `json:"full_name"`
	DateOfBirth string           `json:"date_of_birth"`
	Age         int              `json:"age"`
	Addresses   []AddressPayload `json:"addresses"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func toCustomerResponse(c entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		FullName:    c.FullName,
		DateOfBirth: c.DateOfBirth.Format(time.DateOnly),
		Age:         c.Age,
		Addresses: lo.Map(c.Addresses, func(a entity.Address, _ int) AddressPayload {
			return AddressPayload{
				Street:     a.Street,
				City:       a.City,
				State:      a.State,
				PostalCode: a.PostalCode,
				Country:    a.Country,
			}
		}),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type CustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	// meta
	total      int64
	totalPages int64
	size       int32
	page       int32
}

func (r CustomersResponse) Meta() map[string]any {
	return map[string]any{
		"total":       r.total,
		"total_pages": r.totalPages,
		"size":        r.size,
		"page":        r.page,
	}
}

type CustomerDetailResponse struct {
	Customer CustomerResponse `json:"customer"`
}

type CustomerCreateRequest struct {
	FullName    string           `json:"full_name"`
	DateOfBirth string           `json:"date_of_birth"`
	Addresses   []AddressPayload `json:"addresses,omitempty"`
}

type CustomerCreateResponse struct {
	CustomerResponse
}

func (CustomerCreateResponse) StatusCode() int {
	return http.StatusCreated
}

func (CustomerCreateResponse) Message() string {
	return "customer has been created"
}

type CustomerUpdateRequest struct {
	ID          *int64            `json:"id,omitempty"`
	FullName    *string           `json:"full_name,omitempty"`
	DateOfBirth *string           `json:"date_of_birth,omitempty"`
	Addresses   *[]AddressPayload `json:"addresses,omitempty"`
}

type CustomerUpdateResponse struct {
	CustomerResponse
}

func (CustomerUpdateResponse) Message() string {
	return "customer has been updated"
}

type CustomerDeleteResponse struct {
	ID int64 `json:"id,string"`
}

func (CustomerDeleteResponse) Message() string {
	return "customer has been deleted"
}
