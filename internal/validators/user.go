package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-chat-vault/models"
	"github.com/go-playground/validator"
)

// Field name constants used to restrict validation to a subset of fields.
// They match the JSON names of the request bodies.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "displayName"
)

// UserValidator implements [Validator] for the account request bodies:
// [models.RegisterRequest], [models.LoginRequest] and
// [models.UpdateProfileRequest]. Rules are declared as `validate` struct
// tags and evaluated by go-playground/validator.
type UserValidator struct {
	validate *validator.Validate
}

// NewUserValidator builds a UserValidator. Field errors are reported under
// their JSON names.
func NewUserValidator() *UserValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// "max" counts runes; bcrypt's 72 limit is in bytes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})

	return &UserValidator{validate: v}
}

// Validate checks value against its struct tag rules. When fields are given,
// only those fields (by JSON name) are checked.
func (v *UserValidator) Validate(ctx context.Context, value any, fields ...string) error {
	switch req := value.(type) {
	case models.RegisterRequest, *models.RegisterRequest, models.LoginRequest, *models.LoginRequest:
		return v.validateStruct(req, fields...)
	case models.UpdateProfileRequest:
		return v.validateUpdate(req, fields...)
	case *models.UpdateProfileRequest:
		if req == nil {
			return ErrUnsupportedType
		}
		return v.validateUpdate(*req, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}
}

func (v *UserValidator) validateUpdate(req models.UpdateProfileRequest, fields ...string) error {
	if req.Changes().IsEmpty() {
		return fmt.Errorf("%w: %w", ErrValidationFailed, ErrNoFieldsToUpdate)
	}
	return v.validateStruct(req, fields...)
}

func (v *UserValidator) validateStruct(value any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartial(value, v.qualify(value, fields)...)
	} else {
		err = v.validate.Struct(value)
	}
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(describe(validationErrors), "; "))
}

// qualify converts JSON field names into the Go field names StructPartial
// expects.
func (v *UserValidator) qualify(value any, fields []string) []string {
	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	qualified := make([]string, 0, len(fields))
	for _, f := range fields {
		for i := range t.NumField() {
			sf := t.Field(i)
			name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
			if name == f || sf.Name == f {
				qualified = append(qualified, sf.Name)
			}
		}
	}
	return qualified
}

func describe(errs validator.ValidationErrors) []string {
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		switch fe.Tag() {
		case "required", "notblank":
			messages = append(messages, field+" is required")
		case "email":
			messages = append(messages, field+" must be a valid email address")
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "maxbytes":
			messages = append(messages, fmt.Sprintf("%s must be at most %s bytes", field, fe.Param()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	return messages
}
