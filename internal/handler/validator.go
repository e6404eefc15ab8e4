package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var requestValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("username", isUsername); err != nil {
		panic(err)
	}
	return v
})

// validateRequest runs the struct tag rules of req.
func validateRequest(req interface{}) error {
	return requestValidator().Struct(req)
}

// validationFields maps each failed field, by its JSON name, to a client-facing message.
// Errors that are not validation failures collapse to a single "error" entry.
func validationFields(err error) map[string]string {
	if err == nil {
		return nil
	}

	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return map[string]string{"error": ErrMsgInvalidRequest}
	}

	fields := make(map[string]string, len(failures))
	for _, fe := range failures {
		fields[fe.Field()] = ruleMessage(fe)
	}
	return fields
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "username":
		return "may only contain letters, digits, '_' and '-'"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min", "max":
		unit := "characters"
		switch fe.Kind() {
		case reflect.Slice, reflect.Map, reflect.Array:
			unit = "entries"
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			if fe.Tag() == "min" {
				return "must be at least " + fe.Param()
			}
			return "must be at most " + fe.Param()
		}
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		return fmt.Sprintf("must have %s %s %s", bound, fe.Param(), unit)
	default:
		return "is invalid"
	}
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

// isUsername accepts letters of any script, digits, '_' and '-'.
// Emptiness is left to the required rule.
func isUsername(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return false
		}
	}
	return true
}
