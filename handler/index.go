package handler

import (
	"errors"

	"haven_manager/helper"
	"haven_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// Handler bundles the managers the routes delegate to. Constructed once in
// main with the shared database handle.
type Handler struct {
	Bookings *helper.BookingManager
	Payments *helper.PaymentManager
	Havens   *helper.HavenManager
}

func New(bookings *helper.BookingManager, payments *helper.PaymentManager, havens *helper.HavenManager) *Handler {
	return &Handler{Bookings: bookings, Payments: payments, Havens: havens}
}

// respondError translates domain errors into the JSON envelope. Anything
// untyped is a persistence failure.
func respondError(c *fiber.Ctx, err error) error {
	var verr *helper.ValidationError
	switch {
	case errors.As(err, &verr):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "validation failed", err)
	case errors.Is(err, helper.ErrInvalidStatus):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid status", err)
	case errors.Is(err, helper.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "not found", err)
	case errors.Is(err, helper.ErrConflict):
		return utils.ErrorResponse(c, fiber.StatusConflict, "conflict", err)
	case errors.Is(err, helper.ErrInvalidTransition):
		return utils.ErrorResponse(c, fiber.StatusConflict, "transition not permitted", err)
	case errors.Is(err, helper.ErrUpstream):
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "image store failure", err)
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "internal error", err)
	}
}
