package trainingValidator

import (
	"strconv"
	"strings"

	"trainhub/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// UpdateProgressRequest is the playback-progress event payload. Completed is
// optional and may only assert completion; the ledger ignores a false value.
type UpdateProgressRequest struct {
	ProgressSeconds *int  `json:"progress_seconds" validate:"required,gte=0"`
	Completed       *bool `json:"completed"`
}

// UpdateProgress validates the submit-progress payload and the video id param
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		videoIDStr := strings.TrimSpace(c.Params("video_id"))
		if videoIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Video ID is required!", nil)
		}

		videoID, err := strconv.Atoi(videoIDStr)
		if err != nil || videoID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Video ID!", nil)
		}

		reqData := new(UpdateProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "ProgressSeconds":
					errors["progress_seconds"] = "Progress seconds is required and must be non-negative!"
				default:
					errors[strings.ToLower(fieldErr.Field())] = "Invalid value!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("videoID", uint(videoID))
		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// ProgressList validates the optional filters of the progress listing
func ProgressList() fiber.Handler {
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

		if completed := c.Query("completed"); completed != "" && completed != "true" && completed != "false" {
			errors["completed"] = "Completed must be true or false!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgressList", reqData)
		return c.Next()
	}
}
