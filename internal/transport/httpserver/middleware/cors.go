package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"what2watch-gateway/internal/transport/httpserver/dto"
)

// CORS allows read-only cross-origin access from any origin.
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  fiber.MethodGet + "," + fiber.MethodHead + "," + fiber.MethodOptions,
		ExposeHeaders: dto.HeaderCache + "," + fiber.HeaderXRequestID,
	})
}
