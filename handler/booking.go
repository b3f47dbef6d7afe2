package handler

import (
	"strconv"

	"haven_manager/model"
	"haven_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateBooking(c *fiber.Ctx) error {
	input := c.Locals("createBookingInput").(model.CreateBookingInput)

	booking, err := h.Bookings.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, booking)
}

func (h *Handler) GetBookings(c *fiber.Ctx) error {
	bookings, err := h.Bookings.List(c.Context(), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessList(c, bookings, int64(len(bookings)))
}

func (h *Handler) GetBookingById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)

	booking, images, err := h.Bookings.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"booking":     booking,
		"room_images": images,
	})
}

func (h *Handler) UpdateBookingStatus(c *fiber.Ctx) error {
	input := c.Locals("updateStatusInput").(model.UpdateBookingStatusInput)

	booking, err := h.Bookings.UpdateStatus(c.Context(), input.ID, input.Status, input.RejectionReason)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, booking)
}

func (h *Handler) DeleteBooking(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil || id == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query param is required", err)
	}

	booking, err := h.Bookings.Delete(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, booking)
}

func (h *Handler) GetUserBookings(c *fiber.Ctx) error {
	userID := c.Locals("inputId").(uint)

	bookings, err := h.Bookings.ListForUser(c.Context(), userID, c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessList(c, bookings, int64(len(bookings)))
}

func (h *Handler) GetHavenBookings(c *fiber.Ctx) error {
	havenID := c.Locals("inputId").(uint)

	bookings, err := h.Bookings.ListForHaven(c.Context(), havenID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessList(c, bookings, int64(len(bookings)))
}
