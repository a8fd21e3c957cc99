package hierarchy

import (
	"fmt"
	"testing"

	trainingModels "trainhub/models/training"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestLoadIndexFiltersInactiveRows(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&trainingModels.Module{},
		&trainingModels.Training{},
		&trainingModels.TrainingPrerequisite{},
		&trainingModels.Video{},
	))

	active := module(1, 1)
	retired := module(2, 2)
	retired.IsActive = false
	require.NoError(t, db.Create(&[]trainingModels.Module{active, retired}).Error)

	tr := training(10, 1, 1)
	hidden := training(11, 1, 2)
	hidden.IsActive = false
	require.NoError(t, db.Create(&[]trainingModels.Training{tr, hidden}).Error)

	v := video(100, 10, 1)
	pulled := video(101, 10, 2)
	pulled.IsActive = false
	require.NoError(t, db.Create(&[]trainingModels.Video{v, pulled}).Error)

	idx, err := LoadIndex(db)
	require.NoError(t, err)

	assert.Equal(t, []uint{1}, idx.ModuleIDs())
	assert.Equal(t, []uint{10}, idx.ModuleTrainings(1))
	assert.Equal(t, []uint{100}, idx.TrainingVideos(10))

	_, ok := idx.Training(11)
	assert.False(t, ok)
	_, ok = idx.Video(101)
	assert.False(t, ok)
}
