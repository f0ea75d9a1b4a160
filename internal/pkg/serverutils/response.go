package serverutils

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

func SuccessResponse(data interface{}) fiber.Map {
	return fiber.Map{
		"code": 200,
		"data": data,
	}
}

func ErrorResponse(code int, message string) fiber.Map {
	return fiber.Map{
		"code":    code,
		"message": message,
	}
}

// ErrorHandlerMiddleware converts panics escaping a handler into a 500 JSON
// response instead of tearing down the connection.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[ERROR] Recovered from panic: %v", r)
				_ = ctx.Status(fiber.StatusInternalServerError).
					JSON(ErrorResponse(500, "internal server error"))
			}
		}()
		return ctx.Next()
	}
}
