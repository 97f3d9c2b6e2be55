package serverutils

import (
	"fmt"
	"reflect"
	"strings"

	"lucy-rag-be/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report failures by json field name, not Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateRequest checks a DTO's validate tags and converts the first
// failure into a validation error for the handler middleware.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validation(err.Error())
	}

	fieldErr := validationErrs[0]
	field := strings.ToLower(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return apperr.Validation(fmt.Sprintf("%s is required", field))
	default:
		return apperr.Validation(fmt.Sprintf("%s is invalid", field))
	}
}
