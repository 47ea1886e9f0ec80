package validator

// Validator validates annotated structs and returns a structured error on
// failure, nil otherwise.
type Validator interface {
	Validate(data any) error
}
