package controllers

import (
	"errors"

	"trainhub/hierarchy"
	"trainhub/middleware"
	"trainhub/progress"

	"github.com/gofiber/fiber/v2"
)

// Engine and Hierarchy are wired once at startup; handlers read them the way
// the rest of the app reads database.Database.
var (
	Engine    *progress.Service
	Hierarchy *hierarchy.Provider
)

// Setup installs the engine components used by the handlers
func Setup(service *progress.Service, provider *hierarchy.Provider) {
	Engine = service
	Hierarchy = provider
}

// engineError maps engine errors onto the response envelope
func engineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, progress.ErrInvalidInput):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid progress data!", nil)
	case errors.Is(err, progress.ErrUnknownContentUnit):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	case errors.Is(err, progress.ErrStorageUnavailable):
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Service temporarily unavailable, please retry!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}
