package handler

import (
	"haven_manager/model"
	"haven_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateHaven(c *fiber.Ctx) error {
	input := c.Locals("createHavenInput").(model.CreateHavenInput)

	haven, err := h.Havens.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, haven)
}

func (h *Handler) GetHavens(c *fiber.Ctx) error {
	havens, err := h.Havens.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessList(c, havens, int64(len(havens)))
}

func (h *Handler) GetHavenById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)

	haven, err := h.Havens.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, haven)
}

func (h *Handler) UpdateHaven(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	input := c.Locals("updateHavenInput").(model.UpdateHavenInput)

	haven, err := h.Havens.Update(c.Context(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, haven)
}

func (h *Handler) DeleteHaven(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)

	haven, err := h.Havens.Delete(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, haven)
}
