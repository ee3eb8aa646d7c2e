package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors returned by the services. Handlers map them to status codes with errors.Is.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidID     = errors.New("invalid id")
	ErrInvalidRole   = errors.New("invalid role")
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidField  = errors.New("invalid field value")
	ErrEmptyUpdate   = errors.New("no fields to update")
	ErrAlreadyExists = errors.New("already exists")
)

// FieldViolation is one rejected input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

// ValidationError carries the per-field problems of a rejected payload.
// Err is ErrMissingField or ErrInvalidField.
type ValidationError struct {
	Err        error
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+" "+v.Message)
	}
	return fmt.Sprintf("%v: %s", e.Err, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return e.Err }

func missingField(field string) error {
	return &ValidationError{
		Err:        ErrMissingField,
		Violations: []FieldViolation{{Field: field, Message: "is required"}},
	}
}

func invalidField(field, message string) error {
	return &ValidationError{
		Err:        ErrInvalidField,
		Violations: []FieldViolation{{Field: field, Message: message}},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the `validate` tags of v and converts failures into a
// *ValidationError.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %T: %w", v, err)
	}

	out := &ValidationError{Err: ErrMissingField}
	for _, fe := range fieldErrs {
		msg := "is required"
		if fe.Tag() != "required" {
			msg = fmt.Sprintf("failed the %q rule", fe.Tag())
			out.Err = ErrInvalidField
		}
		out.Violations = append(out.Violations, FieldViolation{Field: fe.Field(), Message: msg})
	}
	return out
}

// ParseID converts a path parameter into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}
