package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"royalestates_backend/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields under their json names so clients see "price", not "Price".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("district", func(fl validator.FieldLevel) bool {
		return model.IsValidDistrict(fl.Field().String())
	})
	v.RegisterValidation("amenity", func(fl validator.FieldLevel) bool {
		return model.IsValidAmenity(fl.Field().String())
	})

	return v
}

// FieldErrors maps a field name to a client-facing validation message.
type FieldErrors map[string]string

// Struct runs the schema validation pass over an input struct. It returns nil
// when the input is valid; services never re-validate what passed here.
func Struct(s interface{}) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"input": "Invalid input"}
	}

	errors := FieldErrors{}
	for _, fe := range verrs {
		field := fe.Field()
		// Collapse slice element failures ("amenities[2]") onto the field.
		if i := strings.Index(field, "["); i > 0 {
			field = field[:i]
		}
		if _, seen := errors[field]; !seen {
			errors[field] = message(fe)
		}
	}
	return errors
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "required_if":
		return fmt.Sprintf("%s is required for residential properties", fe.Field())
	case "email":
		return "Please enter a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must have at least %s entries", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	case "district":
		return fmt.Sprintf("%s is not a recognized district", fe.Field())
	case "amenity":
		return fmt.Sprintf("%s contains an unknown amenity", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
