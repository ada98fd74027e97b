// Package validator implements the payload validators of the API. Each
// validator checks a decoded request body against the struct tags of its
// payload type and reports the first violation as a 400 client error whose
// message names the offending JSON field.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/tbourn/go-music-backend/internal/domain"
)

// newValidate builds a validator that reports JSON field names and knows the
// "notblank" tag.
func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// check validates payload. Schema violations become *domain.ClientError;
// misuse of the validator itself is returned as is.
func check(v *validator.Validate, payload any) error {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.NewInvariantError(describe(verrs[0]))
	}
	return err
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "notblank":
		return fmt.Sprintf("%q is not allowed to be empty", field)
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
