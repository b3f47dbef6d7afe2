package utils

import (
	"haven_manager/model"

	"github.com/gofiber/fiber/v2"
)

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(model.Envelope{
		Success: true,
		Data:    data,
	})
}

// SuccessList is SuccessResponse plus the count field list endpoints carry.
func SuccessList(c *fiber.Ctx, data any, count int64) error {
	return c.Status(fiber.StatusOK).JSON(model.Envelope{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	env := model.Envelope{
		Success: false,
		Message: message,
	}
	if err != nil {
		env.Error = err.Error()
	} else {
		env.Error = message
	}
	return c.Status(status).JSON(env)
}

func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func Ptr[T any](v T) *T {
	return &v
}
