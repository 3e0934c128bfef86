// Package validation holds the request validation rules: structural struct
// tags checked by go-playground/validator, plus the explicit URL, password
// and update-has-content rules applied in a fixed order by each request type.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/user-management/internal/core/domain"
)

var nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names so errors match the payload the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("nickname", func(fl validator.FieldLevel) bool {
		return nicknamePattern.MatchString(fl.Field().String())
	})

	return v
}

// Struct checks the struct tags of s and converts the first failure into a
// *domain.ValidationError.
func Struct(s any) error {
	if err := validate.Struct(s); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return fieldError(ve[0])
		}
		return err
	}
	return nil
}

func fieldError(fe validator.FieldError) *domain.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.NewValidationError(field, "field required")
	case "email":
		return domain.NewValidationError(field, "value is not a valid email address")
	case "min":
		return domain.NewValidationError(field, fmt.Sprintf("must be at least %s characters", fe.Param()))
	case "max":
		return domain.NewValidationError(field, fmt.Sprintf("must be at most %s characters", fe.Param()))
	case "nickname":
		return domain.NewValidationError(field, "may only contain letters, numbers, underscores and dashes")
	default:
		return domain.NewValidationError(field, fmt.Sprintf("failed validation (%s)", fe.Tag()))
	}
}
