package validate

import (
	"haven_manager/constants"
	"haven_manager/model"
	"haven_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateBookingInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_REQUEST_BODY, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.VALIDATION_FAILED, err)
		}

		c.Locals("createBookingInput", input)
		return c.Next()
	}
}

func UpdateBookingStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateBookingStatusInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_REQUEST_BODY, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.VALIDATION_FAILED, err)
		}

		c.Locals("updateStatusInput", input)
		return c.Next()
	}
}
