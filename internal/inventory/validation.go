package inventory

import (
	"errors"
	"strings"
)

// ErrMissingFields matches every *ValidationError.
var ErrMissingFields = errors.New("missing fields")

const (
	missingFieldsTitle   = "Missing fields"
	missingFieldsMessage = "Please fill in every field before saving the product."
)

type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationError lists the fields that blocked a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return "missing fields: " + strings.Join(names, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrMissingFields }

// ValidateProduct checks the text fields that must not be blank. Quantity
// has no gate.
func ValidateProduct(name, description, price string) []FieldError {
	errs := []FieldError{}
	if strings.TrimSpace(name) == "" {
		errs = append(errs, FieldError{Field: FieldName, Description: "Name is required"})
	}
	if strings.TrimSpace(description) == "" {
		errs = append(errs, FieldError{Field: FieldDescription, Description: "Description is required"})
	}
	if strings.TrimSpace(price) == "" {
		errs = append(errs, FieldError{Field: FieldPrice, Description: "Price is required"})
	}
	return errs
}
