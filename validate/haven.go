package validate

import (
	"haven_manager/constants"
	"haven_manager/model"
	"haven_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateHaven() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateHavenInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_REQUEST_BODY, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.VALIDATION_FAILED, err)
		}

		c.Locals("createHavenInput", input)
		return c.Next()
	}
}

func UpdateHaven() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateHavenInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_REQUEST_BODY, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.VALIDATION_FAILED, err)
		}

		c.Locals("updateHavenInput", input)
		return c.Next()
	}
}
