package progress

import (
	"fmt"
	"testing"

	"trainhub/hierarchy"
	trainingModels "trainhub/models/training"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	// One connection keeps sqlite writes serialized; the engine's own
	// concurrency control is still what the concurrency tests exercise.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&trainingModels.Module{},
		&trainingModels.Training{},
		&trainingModels.TrainingPrerequisite{},
		&trainingModels.Video{},
		&trainingModels.UserProgress{},
		&trainingModels.UserCertificate{},
	))
	return db
}

func mkModule(id uint, order int, category string) trainingModels.Module {
	m := trainingModels.Module{
		Title:      fmt.Sprintf("Module %d", id),
		Category:   category,
		OrderIndex: order,
		IsActive:   true,
	}
	m.ID = id
	return m
}

func mkTraining(id, moduleID uint, order int) trainingModels.Training {
	tr := trainingModels.Training{
		ModuleID:   moduleID,
		Title:      fmt.Sprintf("Training %d", id),
		OrderIndex: order,
		IsActive:   true,
	}
	tr.ID = id
	return tr
}

func mkVideo(id, trainingID uint, order, durationSeconds int) trainingModels.Video {
	v := trainingModels.Video{
		TrainingID:      trainingID,
		Title:           fmt.Sprintf("Video %d", id),
		DurationSeconds: durationSeconds,
		OrderIndex:      order,
		IsActive:        true,
	}
	v.ID = id
	return v
}

// seedFixture installs the hierarchy used across the engine tests:
//
//	module 1: training 1 [video 101 D=100, video 102 D=200]
//	          training 2 [video 201 D=0]        requires training 1
//	          training 3 []                     empty placeholder
//	module 2: training 4 [video 401 D=60]
func seedFixture(t *testing.T, db *gorm.DB) *hierarchy.Provider {
	t.Helper()

	modules := []trainingModels.Module{
		mkModule(1, 1, "Safety"),
		mkModule(2, 2, "Compliance"),
	}
	trainings := []trainingModels.Training{
		mkTraining(1, 1, 1),
		mkTraining(2, 1, 2),
		mkTraining(3, 1, 3),
		mkTraining(4, 2, 1),
	}
	videos := []trainingModels.Video{
		mkVideo(101, 1, 1, 100),
		mkVideo(102, 1, 2, 200),
		mkVideo(201, 2, 1, 0),
		mkVideo(401, 4, 1, 60),
	}
	prerequisites := []trainingModels.TrainingPrerequisite{
		{TrainingID: 2, RequiresTrainingID: 1},
	}

	require.NoError(t, db.Create(&modules).Error)
	require.NoError(t, db.Create(&trainings).Error)
	require.NoError(t, db.Create(&videos).Error)
	require.NoError(t, db.Create(&prerequisites).Error)

	provider := hierarchy.NewProvider()
	idx, err := hierarchy.LoadIndex(db)
	require.NoError(t, err)
	provider.Replace(idx)
	return provider
}

func boolPtr(b bool) *bool { return &b }
