// FILE: internal/pkg/serverutils/validator.go
package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and maps failures to a 400 so
// the error middleware renders them as client errors.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	first := validationErrors[0]
	return fiber.NewError(fiber.StatusBadRequest,
		fmt.Sprintf("field '%s' failed on the '%s' rule", first.Field(), first.Tag()))
}
