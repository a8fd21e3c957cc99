package controllers

import (
	"strconv"

	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"
	trainingModels "trainhub/models/training"
	"trainhub/utils"
	trainingValidator "trainhub/validators/training"

	"github.com/gofiber/fiber/v2"
)

// UpdateVideoProgress applies one playback-progress event for the calling user
func UpdateVideoProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID := c.Locals("videoID").(uint)
	reqData, ok := c.Locals("validatedProgress").(*trainingValidator.UpdateProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := Engine.SubmitProgress(userID, videoID, *reqData.ProgressSeconds, reqData.Completed)
	if err != nil {
		return engineError(c, err)
	}

	action := models.AuditActionUpdate
	if result.Record.Completed {
		action = models.AuditActionComplete
	}
	utils.RecordAudit(userID, action, "UserProgress", strconv.Itoa(int(result.Record.ID)),
		"Video progress updated", fiber.Map{
			"video_id":          videoID,
			"progress_seconds":  result.Record.ProgressSeconds,
			"completed":         result.Record.Completed,
			"training_id":       result.TrainingID,
			"training_progress": result.TrainingProgress,
		}, c.IP(), c.Get("User-Agent"))

	if result.Certificate != nil {
		utils.RecordAudit(userID, models.AuditActionComplete, "UserCertificate", strconv.Itoa(int(result.Certificate.ID)),
			"Certificate issued for completed training", fiber.Map{
				"training_id":      result.TrainingID,
				"certificate_code": result.Certificate.CertificateCode,
			}, c.IP(), c.Get("User-Agent"))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", fiber.Map{
		"progress":           result.Record,
		"training_id":        result.TrainingID,
		"training_progress":  result.TrainingProgress,
		"training_completed": result.TrainingComplete,
		"certificate":        result.Certificate,
		"next_video":         result.NextUnit,
	})
}

// GetVideoStatus returns the derived status of one video plus the advisory
// next unit
func GetVideoStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID := c.Locals("videoID").(uint)

	state, record, err := Engine.GetVideoStatus(userID, videoID)
	if err != nil {
		return engineError(c, err)
	}

	next, err := Engine.GetNextRecommendedUnit(userID, videoID)
	if err != nil {
		return engineError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video status fetched successfully!", fiber.Map{
		"status":     state,
		"progress":   record,
		"next_video": next,
	})
}

// GetUserProgressList lists the calling user's progress rows with optional
// completed/training/module filters
func GetUserProgressList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Set default pagination
	page := 1
	limit := 20
	reqData, ok := c.Locals("validatedProgressList").(*trainingValidator.PageRequest)
	if ok && reqData != nil {
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&trainingModels.UserProgress{}).Where("user_id = ?", userID)

	if completed := c.Query("completed"); completed != "" {
		db = db.Where("completed = ?", completed == "true")
	}

	idx := Hierarchy.Current()
	if trainingIDStr := c.Query("training_id"); trainingIDStr != "" && idx != nil {
		if trainingID, err := strconv.Atoi(trainingIDStr); err == nil && trainingID > 0 {
			db = db.Where("video_id IN ?", videoIDsOrNone(idx.TrainingVideos(uint(trainingID))))
		}
	}
	if moduleIDStr := c.Query("module_id"); moduleIDStr != "" && idx != nil {
		if moduleID, err := strconv.Atoi(moduleIDStr); err == nil && moduleID > 0 {
			var ids []uint
			for _, trainingID := range idx.ModuleTrainings(uint(moduleID)) {
				ids = append(ids, idx.TrainingVideos(trainingID)...)
			}
			db = db.Where("video_id IN ?", videoIDsOrNone(ids))
		}
	}

	// Get total count
	var total int64
	db.Count(&total)

	// Fetch paginated data
	var rows []trainingModels.UserProgress
	if err := db.Offset(offset).Limit(limit).Order("last_watched desc").Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	response := map[string]interface{}{
		"progress": rows,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", response)
}

// videoIDsOrNone keeps an IN clause well-formed when a filter matches nothing
func videoIDsOrNone(ids []uint) []uint {
	if len(ids) == 0 {
		return []uint{0}
	}
	return ids
}
