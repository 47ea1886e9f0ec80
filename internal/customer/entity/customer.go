package entity

import "time"

// Customer is the stored customer record.
type Customer struct {
	ID          int64
	FullName    string
	DateOfBirth time.Time
	Age         int
	Addresses   []Address
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Address is a single entry in a customer's ordered address collection.
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// AgeYears computes full years elapsed between dob and now.
func AgeYears(dob, now time.Time) int {
	age := now.Year() - dob.Year()

	// birthday not reached yet this year
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}

	if age < 0 {
		return 0
	}

	return age
}

// TotalPages computes ceil(total/size). A zero total yields zero pages.
func TotalPages(total int64, size int32) int64 {
	if total <= 0 || size <= 0 {
		return 0
	}

	return (total + int64(size) - 1) / int64(size)
}
