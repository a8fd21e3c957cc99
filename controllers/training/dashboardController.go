package controllers

import (
	"math"

	"trainhub/database"
	"trainhub/middleware"
	trainingModels "trainhub/models/training"
	"trainhub/progress"

	"github.com/gofiber/fiber/v2"
)

// GetDashboardStats returns the calling user's overall numbers for the
// profile dashboard
func GetDashboardStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	idx := Hierarchy.Current()
	if idx == nil {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Service temporarily unavailable, please retry!", nil)
	}

	db := database.Database.Db

	var completedVideos int64
	if err := db.Model(&trainingModels.UserProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&completedVideos).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard stats!", nil)
	}

	var inProgressVideos int64
	if err := db.Model(&trainingModels.UserProgress{}).
		Where("user_id = ? AND completed = ? AND progress_seconds > 0", userID, false).
		Count(&inProgressVideos).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard stats!", nil)
	}

	var certificatesEarned int64
	if err := db.Model(&trainingModels.UserCertificate{}).
		Where("user_id = ?", userID).
		Count(&certificatesEarned).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard stats!", nil)
	}

	overall, err := Engine.Evaluator().OverallProgress(userID)
	if err != nil {
		return engineError(c, err)
	}

	// Last five touched units
	var recent []trainingModels.UserProgress
	if err := db.Where("user_id = ?", userID).
		Order("last_watched desc").Limit(5).Find(&recent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard stats!", nil)
	}

	recentActivity := make([]fiber.Map, 0, len(recent))
	for i := range recent {
		row := recent[i]
		entry := fiber.Map{
			"video_id":         row.VideoID,
			"progress_seconds": row.ProgressSeconds,
			"status":           progress.VideoStatus(&row),
			"completed":        row.Completed,
			"last_watched":     row.LastWatched,
		}
		if video, ok := idx.Video(row.VideoID); ok {
			entry["video_title"] = video.Title
			if node, ok := idx.Training(video.TrainingID); ok {
				entry["training_title"] = node.Title
				if module, ok := idx.Module(node.ModuleID); ok {
					entry["module_title"] = module.Title
				}
			}
		}
		recentActivity = append(recentActivity, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_modules":       idx.TotalModules(),
		"total_trainings":     idx.TotalTrainings(),
		"total_videos":        idx.TotalVideos(),
		"completed_videos":    completedVideos,
		"in_progress_videos":  inProgressVideos,
		"certificates_earned": certificatesEarned,
		"overall_progress":    math.Round(overall*10000) / 100, // percent, two decimals
		"recent_activity":     recentActivity,
	})
}
