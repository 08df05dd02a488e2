// Package validators wires go-playground/validator into Echo's request
// validation hook.
package validators

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts validator.Validate to echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator for binding to echo.Echo.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks struct tags and reports failures as 400 errors naming
// the failing fields.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
