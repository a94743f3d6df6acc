package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-seed-api/models"
)

// Field name constants accepted by Validate to restrict validation to a
// subset of fields. They are the JSON names of the request models.
const (
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldName     = "name"
)

// RequestValidator implements [Validator] for the request models of the
// users and items API using struct tags.
//
// Supported types (value or pointer):
//   - models.UserRegistration
//   - models.UserPatch
//   - models.Item
//   - models.ItemPatch
//   - models.Credentials
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator constructs a RequestValidator reporting fields by
// their JSON names.
func NewRequestValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UserRegistration, models.UserPatch, models.Item, models.ItemPatch:
		return v.validateStruct(ctx, value, fields...)
	case *models.UserRegistration:
		return v.validateStruct(ctx, *value, fields...)
	case *models.UserPatch:
		return v.validateStruct(ctx, *value, fields...)
	case *models.Item:
		return v.validateStruct(ctx, *value, fields...)
	case *models.ItemPatch:
		return v.validateStruct(ctx, *value, fields...)

	case models.Credentials:
		return v.validateCredentials(value)
	case *models.Credentials:
		return v.validateCredentials(*value)
	}

	return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
}

func (v *RequestValidator) validateStruct(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		known := jsonFieldNames(reflect.TypeOf(obj))
		for _, f := range fields {
			if !slices.Contains(known, f) {
				return fmt.Errorf("%w: %s", ErrUnknownField, f)
			}
		}
		err = v.validate.StructPartialCtx(ctx, obj, structFieldNames(reflect.TypeOf(obj), fields)...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}

	return toValidationError(err)
}

func (v *RequestValidator) validateCredentials(c models.Credentials) error {
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyUsername)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyPassword)
	}
	return nil
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}

	return out
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func jsonFieldNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		names = append(names, jsonFieldName(t.Field(i)))
	}
	return names
}

// structFieldNames maps JSON names onto the Go field names StructPartial expects.
func structFieldNames(t reflect.Type, jsonNames []string) []string {
	out := make([]string, 0, len(jsonNames))
	for i := range t.NumField() {
		f := t.Field(i)
		if slices.Contains(jsonNames, jsonFieldName(f)) {
			out = append(out, f.Name)
		}
	}
	return out
}
