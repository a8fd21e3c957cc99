package trainingValidator

import (
	"strconv"
	"strings"

	"trainhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// idParam validates a positive integer path parameter and stores it in Locals
func idParam(param, local, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
		}

		c.Locals(local, uint(id))
		return c.Next()
	}
}

// GetModule validates the module id param
func GetModule() fiber.Handler {
	return idParam("id", "moduleID", "Module ID")
}

// GetTraining validates the training id param
func GetTraining() fiber.Handler {
	return idParam("id", "trainingID", "Training ID")
}

// GetVideo validates the video id param
func GetVideo() fiber.Handler {
	return idParam("id", "videoID", "Video ID")
}

// PageRequest carries the optional pagination query parameters
type PageRequest struct {
	Page  *int `query:"page"`
	Limit *int `query:"limit"`
}

// ModuleList validates the module listing filters
func ModuleList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PageRequest)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			errors["limit"] = "Limit must be between 1 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModuleList", reqData)
		return c.Next()
	}
}
