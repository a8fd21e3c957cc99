package controllers

import (
	"strconv"
	"strings"

	"trainhub/database"
	"trainhub/hierarchy"
	"trainhub/middleware"
	"trainhub/models"
	trainingModels "trainhub/models/training"
	"trainhub/progress"
	"trainhub/utils"
	trainingValidator "trainhub/validators/training"

	"github.com/gofiber/fiber/v2"
)

// GetModules lists modules in display order with the calling user's aggregate
// progress per module
func GetModules(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	idx := Hierarchy.Current()
	if idx == nil {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Service temporarily unavailable, please retry!", nil)
	}

	// Set default pagination
	page := 1
	limit := 20
	reqData, ok := c.Locals("validatedModuleList").(*trainingValidator.PageRequest)
	if ok && reqData != nil {
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}
	}

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))

	var filtered []*hierarchy.ModuleNode
	for _, id := range idx.ModuleIDs() {
		module, _ := idx.Module(id)
		if category != "" && !strings.Contains(strings.ToLower(module.Category), category) {
			continue
		}
		filtered = append(filtered, module)
	}

	total := len(filtered)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	result := make([]fiber.Map, 0, end-start)
	for _, module := range filtered[start:end] {
		fraction, err := Engine.GetModuleProgress(userID, module.ID)
		if err != nil {
			return engineError(c, err)
		}

		videos := 0
		for _, trainingID := range module.TrainingIDs {
			videos += len(idx.TrainingVideos(trainingID))
		}

		result = append(result, fiber.Map{
			"id":              module.ID,
			"title":           module.Title,
			"description":     module.Description,
			"category":        module.Category,
			"order_index":     module.OrderIndex,
			"trainings_count": len(module.TrainingIDs),
			"videos_count":    videos,
			"progress":        fraction,
		})
	}

	response := map[string]interface{}{
		"modules": result,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", response)
}

// GetModuleDetails returns one module with per-training progress for the
// calling user
func GetModuleDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(uint)

	idx := Hierarchy.Current()
	if idx == nil {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Service temporarily unavailable, please retry!", nil)
	}

	module, ok := idx.Module(moduleID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	moduleFraction, err := Engine.GetModuleProgress(userID, moduleID)
	if err != nil {
		return engineError(c, err)
	}

	trainings := make([]fiber.Map, 0, len(module.TrainingIDs))
	for _, trainingID := range module.TrainingIDs {
		node, _ := idx.Training(trainingID)
		fraction, done, err := Engine.GetTrainingProgress(userID, trainingID)
		if err != nil {
			return engineError(c, err)
		}
		trainings = append(trainings, fiber.Map{
			"id":               node.ID,
			"title":            node.Title,
			"description":      node.Description,
			"duration_minutes": node.DurationMinutes,
			"order_index":      node.OrderIndex,
			"videos_count":     len(node.VideoIDs),
			"prerequisites":    node.PrerequisiteIDs,
			"progress":         fraction,
			"completed":        done,
		})
	}

	utils.RecordAudit(userID, models.AuditActionView, "Module", strconv.Itoa(int(moduleID)),
		"Module "+module.Title+" viewed", nil, c.IP(), c.Get("User-Agent"))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module details fetched successfully!", fiber.Map{
		"id":          module.ID,
		"title":       module.Title,
		"description": module.Description,
		"category":    module.Category,
		"progress":    moduleFraction,
		"trainings":   trainings,
	})
}

// GetTrainingDetails returns one training with the ordered videos and the
// calling user's status on each
func GetTrainingDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	trainingID := c.Locals("trainingID").(uint)

	idx := Hierarchy.Current()
	if idx == nil {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Service temporarily unavailable, please retry!", nil)
	}

	node, ok := idx.Training(trainingID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}
	module, _ := idx.Module(node.ModuleID)

	fraction, done, err := Engine.GetTrainingProgress(userID, trainingID)
	if err != nil {
		return engineError(c, err)
	}

	// One read for all unit records of this training
	records := make(map[uint]trainingModels.UserProgress)
	if len(node.VideoIDs) > 0 {
		var rows []trainingModels.UserProgress
		if err := database.Database.Db.
			Where("user_id = ? AND video_id IN ?", userID, node.VideoIDs).
			Find(&rows).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
		for _, row := range rows {
			records[row.VideoID] = row
		}
	}

	videos := make([]fiber.Map, 0, len(node.VideoIDs))
	for _, videoID := range node.VideoIDs {
		video, _ := idx.Video(videoID)
		entry := fiber.Map{
			"id":               video.ID,
			"title":            video.Title,
			"video_url":        video.VideoURL,
			"duration_seconds": video.DurationSeconds,
			"order_index":      video.OrderIndex,
		}
		if row, ok := records[videoID]; ok {
			entry["status"] = progress.VideoStatus(&row)
			entry["progress_seconds"] = row.ProgressSeconds
			entry["completed"] = row.Completed
		} else {
			entry["status"] = progress.VideoStatus(nil)
			entry["progress_seconds"] = 0
			entry["completed"] = false
		}
		videos = append(videos, entry)
	}

	utils.RecordAudit(userID, models.AuditActionView, "Training", strconv.Itoa(int(trainingID)),
		"Training "+node.Title+" viewed", nil, c.IP(), c.Get("User-Agent"))

	data := fiber.Map{
		"id":               node.ID,
		"title":            node.Title,
		"description":      node.Description,
		"duration_minutes": node.DurationMinutes,
		"prerequisites":    node.PrerequisiteIDs,
		"progress":         fraction,
		"completed":        done,
		"videos":           videos,
	}
	if module != nil {
		data["module"] = fiber.Map{"id": module.ID, "title": module.Title}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training details fetched successfully!", data)
}
