package handler

import (
	"github.com/99minutos/user-management/internal/core/validation"
)

// selfValidating payloads run their own ordered rule chain.
type selfValidating interface {
	Validate() error
}

// echoValidator lets Echo call c.Validate(req). Payloads that validate
// themselves are trusted to do so; anything else gets the struct tags only.
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{}
}

// Validate satisfies the echo.Validator interface. Failures are
// *domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	if v, ok := i.(selfValidating); ok {
		return v.Validate()
	}
	return validation.Struct(i)
}
