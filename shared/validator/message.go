package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var templates = map[string]string{
	"required":    "{field} is required",
	"required_if": "{field} is required when {param}",
	"datetime":    "{field} must match the format {param}",
	"email":       "{field} must be a valid email address",
	"oneof":       "{field} must be one of {param}",
	"gt":          "{field} must be greater than {param}",
	"gte":         "{field} must be greater than or equal to {param}",
	"min":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"max":         "{field} must be less than or equal to {param}",
	"ne":          "{field} must not be {param}",
	"gtfield":     "{field} must be after {param}",
	"dive":        "{field} contains an invalid entry",
}

// message renders the first field error that has a template. Unknown tags fall back to the
// validator's own text. A non-empty name replaces the field name.
func message(err error, name string) string {
	var fieldErrs val.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	for _, fe := range fieldErrs {
		field := fe.Field()
		if name != "" {
			field = name
		}

		if tmpl, ok := templates[fe.Tag()]; ok {
			return strings.NewReplacer("{field}", field, "{param}", fe.Param()).Replace(tmpl)
		}
	}

	return fieldErrs.Error()
}
