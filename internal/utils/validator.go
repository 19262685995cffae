package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	if Validate != nil {
		return
	}
	Validate = validator.New(validator.WithRequiredStructEnabled())
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// FieldErrors flattens validator errors into a field -> message map.
// Other errors yield nil.
func FieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		name := strings.TrimPrefix(fe.Namespace(), strings.SplitN(fe.Namespace(), ".", 2)[0]+".")
		switch fe.Tag() {
		case "required":
			fields[name] = "this field is required"
		case "email":
			fields[name] = "enter a valid email address"
		case "uuid":
			fields[name] = "must be a valid id"
		case "max":
			fields[name] = fmt.Sprintf("must be at most %s characters", fe.Param())
		case "min":
			fields[name] = fmt.Sprintf("must be at least %s characters", fe.Param())
		default:
			fields[name] = fmt.Sprintf("failed on %s", fe.Tag())
		}
	}
	return fields
}
