package errors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldErrors flattens validator errors into field -> message pairs. The
// field name is whatever the validator reports, the JSON name when a tag name
// func is registered. ok is false when err carries no field errors.
func FieldErrors(err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return nil, false
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return fields, true
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "gt":
		return fmt.Sprintf("deve ser maior que %s", fe.Param())
	case "max":
		return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
	default:
		return fmt.Sprintf("falhou na regra %q", fe.Tag())
	}
}
