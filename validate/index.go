package validate

import (
	"errors"
	"strconv"

	"haven_manager/constants"
	"haven_manager/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// GetById parses a numeric route param and stores it in Locals for the
// handler.
func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		valueKey, err := strconv.ParseUint(c.Params(key), 10, 32)
		if err != nil || valueKey == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("inputId", uint(valueKey))
		return c.Next()
	}
}
