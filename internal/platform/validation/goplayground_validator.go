package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type GoPlaygroundValidator struct {
	v *validator.Validate
}

var _ Validator = (*GoPlaygroundValidator)(nil)

func NewGoPlaygroundValidator() *GoPlaygroundValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so errors line up with the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &GoPlaygroundValidator{v: v}
}

func (va *GoPlaygroundValidator) ValidateStruct(s any) map[string]string {
	err := va.v.Struct(s)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return map[string]string{"input": err.Error()}
	}

	errMap := make(map[string]string, len(valErrs))
	for _, e := range valErrs {
		errMap[e.Field()] = message(e)
	}
	return errMap
}

var messages = map[string]string{
	"required":     "%s is required",
	"email":        "%s must be a valid email address",
	"min":          "%s must be at least %s characters long",
	"max":          "%s must be at most %s characters long",
	"alphaunicode": "%s must contain only letters",
	"uuid":         "%s must be a valid UUID",
	"printascii":   "%s must contain only printable characters",
}

func message(e validator.FieldError) string {
	format, ok := messages[e.Tag()]
	if !ok {
		return fmt.Sprintf("%s is invalid", e.Field())
	}
	if strings.Count(format, "%s") == 2 {
		return fmt.Sprintf(format, e.Field(), e.Param())
	}
	return fmt.Sprintf(format, e.Field())
}
