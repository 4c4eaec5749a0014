package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"hotelops/shared/failure"
)

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	return v
}

// decimalValue lets numeric tags such as gt=0 or ne=0 apply to money fields.
func decimalValue(field reflect.Value) any {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}

	f, _ := d.Float64()

	return f
}

// jsonFieldName reports fields by their wire name so messages match the request body.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// Validate decodes a JSON body into data and validates it. Both decode and rule failures
// are 400s.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err, "")) //nolint:wrapcheck
	}

	return nil
}

// ValidateParam checks a single query or path value against tag. name labels the value
// in the error message.
func ValidateParam(name string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return failure.BadRequestFromString(message(err, name)) //nolint:wrapcheck
	}

	return nil
}
