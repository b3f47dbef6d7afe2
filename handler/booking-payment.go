package handler

import (
	"errors"

	"haven_manager/model"
	"haven_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateBookingPayment(c *fiber.Ctx) error {
	input := c.Locals("createPaymentInput").(model.CreateBookingPaymentInput)

	payment, err := h.Payments.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, payment)
}

func (h *Handler) GetBookingPayments(c *fiber.Ctx) error {
	payments, err := h.Payments.List(c.Context(), c.Query("status"), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessList(c, payments, int64(len(payments)))
}

func (h *Handler) GetBookingPaymentById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)

	payment, err := h.Payments.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, payment)
}

func (h *Handler) UpdateBookingPayment(c *fiber.Ctx) error {
	input := c.Locals("updatePaymentInput").(model.UpdateBookingPaymentInput)

	// Path id wins; the body id serves callers that patch the collection root.
	id, ok := c.Locals("inputId").(uint)
	if !ok {
		if input.ID == nil || *input.ID == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "id is required", errors.New("no payment id in path or body"))
		}
		id = *input.ID
	}

	payment, err := h.Payments.Update(c.Context(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, payment)
}

func (h *Handler) DeleteBookingPayment(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)

	payment, err := h.Payments.Delete(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, payment)
}
