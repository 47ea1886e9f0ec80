// Package uid provides the application's ID generators.
package uid

// StringID generates string identifiers (correlation IDs, idempotency state).
type StringID interface {
	Generate() string
}

// NumberID generates numeric identifiers for stored records.
type NumberID interface {
	Generate() int64
}
