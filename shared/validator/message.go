package validator

import (
	"errors"
	"fmt"
	"strings"

	val "github.com/go-playground/validator/v10"
)

type formatter func(field, param string) string

var messages = map[string]formatter{
	"required": func(field, _ string) string { return field + " is required" },
	"notblank": func(field, _ string) string { return field + " must not be blank" },
	"date":     func(field, _ string) string { return field + " must be a date formatted as YYYY-MM-DD" },
	"oneof":    func(field, param string) string { return field + " must be one of " + param },
	"gte":      atLeast,
	"min":      atLeast,
	"lte":      atMost,
	"max":      atMost,
	"gt": func(field, param string) string {
		return fmt.Sprintf("%s must be greater than %s", field, param)
	},
}

func atLeast(field, param string) string {
	return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
}

func atMost(field, param string) string {
	return fmt.Sprintf("%s must be less than or equal to %s", field, param)
}

// fieldPath drops the struct name so list elements read as problems[1].
func fieldPath(fieldErr val.FieldError) string {
	namespace := fieldErr.Namespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}

	if fieldErr.Field() != "" {
		return fieldErr.Field()
	}

	return "value"
}

// message reports the first failed rule in the order the fields are declared.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, fieldErr := range valErrors {
		if format, ok := messages[fieldErr.Tag()]; ok {
			return format(fieldPath(fieldErr), fieldErr.Param())
		}
	}

	return valErrors.Error()
}
