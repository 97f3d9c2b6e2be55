package serverutils

import "github.com/gofiber/fiber/v2"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func ErrorResponse(message string) fiber.Map {
	return fiber.Map{
		"status":  StatusError,
		"message": message,
	}
}
