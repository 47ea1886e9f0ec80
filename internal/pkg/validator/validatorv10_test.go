package validator

import (
	"errors"
	"testing"
)

type sampleInput struct {
	FullName    string `validate:"required,min=2,alphaspace"`
	DateOfBirth string `validate:"required,dateonly"`
	PostalCode  string `validate:"omitempty,postalcode"`
}

func TestV10ValidatorValid(t *testing.T) {
	// Arrange
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	// Act
	err = v.Validate(sampleInput{
		FullName:    "Jane Doe",
		DateOfBirth: "1990-03-14",
		PostalCode:  "62701",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestV10ValidatorCustomRules(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	tests := []struct {
		name      string
		in        sampleInput
		wantField string
	}{
		{
			name:      "digits in name",
			in:        sampleInput{FullName: "Jane D0e", DateOfBirth: "1990-03-14"},
			wantField: "full_name",
		},
		{
			name:      "wrong date layout",
			in:        sampleInput{FullName: "Jane Doe", DateOfBirth: "14/03/1990"},
			wantField: "date_of_birth",
		},
		{
			name:      "postal code too short",
			in:        sampleInput{FullName: "Jane Doe", DateOfBirth: "1990-03-14", PostalCode: "ab"},
			wantField: "postal_code",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			err := v.Validate(tc.in)

			// Assert
			if err == nil {
				t.Fatalf("expected validation error")
			}

			var verr V10ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected V10ValidationError, got %T", err)
			}
			if _, ok := verr.Values()[tc.wantField]; !ok {
				t.Fatalf("expected error for field %q, got %v", tc.wantField, verr.Values())
			}
		})
	}
}
