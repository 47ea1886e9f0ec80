package entity

import "strings"

// SortField identifies a sortable customer column.
type SortField string

const (
	SortFieldID          SortField = "id"
	SortFieldFullName    SortField = "full_name"
	SortFieldDateOfBirth SortField = "date_of_birth"
	SortFieldCreatedAt   SortField = "created_at"
	SortFieldUpdatedAt   SortField = "updated_at"
)

// ParseSortField maps a raw query value to a sortable field. An empty value
// defaults to id; unknown values report ok=false.
func ParseSortField(raw string) (SortField, bool) {
	switch SortField(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return SortFieldID, true
	case SortFieldID:
		return SortFieldID, true
	case SortFieldFullName:
		return SortFieldFullName, true
	case SortFieldDateOfBirth:
		return SortFieldDateOfBirth, true
	case SortFieldCreatedAt:
		return SortFieldCreatedAt, true
	case SortFieldUpdatedAt:
		return SortFieldUpdatedAt, true
	default:
		return "", false
	}
}

// Column returns the storage column backing the sort field.
func (f SortField) Column() string {
	return string(f)
}

// SortOrder is the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// ParseSortOrder maps a raw query value to a direction. An empty value
// defaults to ascending; unknown values report ok=false.
func ParseSortOrder(raw string) (SortOrder, bool) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return SortOrderAsc, true
	case SortOrderAsc:
		return SortOrderAsc, true
	case SortOrderDesc:
		return SortOrderDesc, true
	default:
		return "", false
	}
}

// Sort combines a field and direction for list queries.
type Sort struct {
	Field SortField
	Order SortOrder
}
