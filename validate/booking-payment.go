package validate

import (
	"haven_manager/constants"
	"haven_manager/model"
	"haven_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateBookingPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateBookingPaymentInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_REQUEST_BODY, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.VALIDATION_FAILED, err)
		}

		c.Locals("createPaymentInput", input)
		return c.Next()
	}
}

func UpdateBookingPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateBookingPaymentInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_REQUEST_BODY, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.VALIDATION_FAILED, err)
		}

		c.Locals("updatePaymentInput", input)
		return c.Next()
	}
}
