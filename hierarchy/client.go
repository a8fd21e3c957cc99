package hierarchy

import (
	"encoding/json"
	"fmt"
	"log"

	"trainhub/config"
	trainingModels "trainhub/models/training"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

// Snapshot payload published by the external content service. Ids are the
// content service's stable keys; this engine never mints them.
type VideoPayload struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	VideoURL        string `json:"video_url"`
	DurationSeconds int    `json:"duration_seconds"`
	OrderIndex      int    `json:"order_index"`
	IsActive        bool   `json:"is_active"`
}

type TrainingPayload struct {
	ID              uint           `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	DurationMinutes int            `json:"duration_minutes"`
	OrderIndex      int            `json:"order_index"`
	IsActive        bool           `json:"is_active"`
	Prerequisites   []uint         `json:"prerequisites"`
	Videos          []VideoPayload `json:"videos"`
}

type ModulePayload struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	OrderIndex  int               `json:"order_index"`
	IsActive    bool              `json:"is_active"`
	Trainings   []TrainingPayload `json:"trainings"`
}

type SnapshotPayload struct {
	Modules []ModulePayload `json:"modules"`
}

// FetchSnapshot pulls the published hierarchy from the content service
func FetchSnapshot() (*SnapshotPayload, error) {
	if config.AppConfig.ContentApiURL == "" {
		return nil, fmt.Errorf("CONTENT_API_URL is not configured")
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Accept", "application/json").
		SetHeader("X-Api-Key", config.AppConfig.ContentApiKey).
		Get(config.AppConfig.ContentApiURL + "/hierarchy/snapshot")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hierarchy snapshot: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("content service returned status %d", resp.StatusCode())
	}

	var payload SnapshotPayload
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("invalid hierarchy snapshot payload: %w", err)
	}
	return &payload, nil
}

// ApplySnapshot replaces the local content tables with the snapshot and swaps
// the provider to a freshly built index. The table replacement runs in one
// transaction so partially applied snapshots are never observable.
func ApplySnapshot(db *gorm.DB, provider *Provider, payload *SnapshotPayload) (string, error) {
	var (
		modules       []trainingModels.Module
		trainings     []trainingModels.Training
		videos        []trainingModels.Video
		prerequisites []trainingModels.TrainingPrerequisite
	)

	for _, m := range payload.Modules {
		module := trainingModels.Module{
			Title:       m.Title,
			Description: m.Description,
			Category:    m.Category,
			OrderIndex:  m.OrderIndex,
			IsActive:    m.IsActive,
		}
		module.ID = m.ID
		modules = append(modules, module)

		for _, t := range m.Trainings {
			tr := trainingModels.Training{
				ModuleID:        m.ID,
				Title:           t.Title,
				Description:     t.Description,
				DurationMinutes: t.DurationMinutes,
				OrderIndex:      t.OrderIndex,
				IsActive:        t.IsActive,
			}
			tr.ID = t.ID
			trainings = append(trainings, tr)

			for _, req := range t.Prerequisites {
				prerequisites = append(prerequisites, trainingModels.TrainingPrerequisite{
					TrainingID:         t.ID,
					RequiresTrainingID: req,
				})
			}

			for _, v := range t.Videos {
				video := trainingModels.Video{
					TrainingID:      t.ID,
					Title:           v.Title,
					VideoURL:        v.VideoURL,
					DurationSeconds: v.DurationSeconds,
					OrderIndex:      v.OrderIndex,
					IsActive:        v.IsActive,
				}
				video.ID = v.ID
				videos = append(videos, video)
			}
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return "", tx.Error
	}

	for _, model := range []interface{}{
		&trainingModels.TrainingPrerequisite{},
		&trainingModels.Video{},
		&trainingModels.Training{},
		&trainingModels.Module{},
	} {
		if err := tx.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			tx.Rollback()
			return "", fmt.Errorf("failed to clear content tables: %w", err)
		}
	}

	if len(modules) > 0 {
		if err := tx.Create(&modules).Error; err != nil {
			tx.Rollback()
			return "", fmt.Errorf("failed to insert modules: %w", err)
		}
	}
	if len(trainings) > 0 {
		if err := tx.Create(&trainings).Error; err != nil {
			tx.Rollback()
			return "", fmt.Errorf("failed to insert trainings: %w", err)
		}
	}
	if len(videos) > 0 {
		if err := tx.Create(&videos).Error; err != nil {
			tx.Rollback()
			return "", fmt.Errorf("failed to insert videos: %w", err)
		}
	}
	if len(prerequisites) > 0 {
		if err := tx.Create(&prerequisites).Error; err != nil {
			tx.Rollback()
			return "", fmt.Errorf("failed to insert prerequisites: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return "", err
	}

	idx, err := LoadIndex(db)
	if err != nil {
		return "", err
	}
	return provider.Replace(idx), nil
}

// SyncFromContentService fetches the published hierarchy and installs it.
// When the content service is unreachable, the current snapshot stays active.
func SyncFromContentService(db *gorm.DB, provider *Provider) error {
	payload, err := FetchSnapshot()
	if err != nil {
		return err
	}
	version, err := ApplySnapshot(db, provider, payload)
	if err != nil {
		return err
	}
	log.Printf("[HIERARCHY-SYNC] Installed snapshot %s (%d modules)", version, len(payload.Modules))
	return nil
}

// LoadFromDatabase installs a snapshot built from the local content tables,
// used at startup and as a fallback when the content service is unreachable.
func LoadFromDatabase(db *gorm.DB, provider *Provider) error {
	idx, err := LoadIndex(db)
	if err != nil {
		return err
	}
	version := provider.Replace(idx)
	log.Printf("[HIERARCHY-SYNC] Installed snapshot %s from local tables (%d modules)", version, idx.TotalModules())
	return nil
}
