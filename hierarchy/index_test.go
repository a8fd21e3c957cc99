package hierarchy

import (
	"testing"

	trainingModels "trainhub/models/training"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func module(id uint, order int) trainingModels.Module {
	m := trainingModels.Module{Title: "m", OrderIndex: order, IsActive: true}
	m.ID = id
	return m
}

func training(id, moduleID uint, order int) trainingModels.Training {
	tr := trainingModels.Training{ModuleID: moduleID, Title: "t", OrderIndex: order, IsActive: true}
	tr.ID = id
	return tr
}

func video(id, trainingID uint, order int) trainingModels.Video {
	v := trainingModels.Video{TrainingID: trainingID, Title: "v", OrderIndex: order, IsActive: true}
	v.ID = id
	return v
}

func TestNewIndexOrdering(t *testing.T) {
	idx := NewIndex(
		[]trainingModels.Module{module(2, 1), module(1, 2)},
		[]trainingModels.Training{
			training(10, 2, 2),
			training(11, 2, 1),
			training(12, 1, 1),
		},
		[]trainingModels.Video{
			// same OrderIndex: id breaks the tie
			video(100, 11, 1),
			video(101, 11, 1),
			video(102, 11, 0),
		},
		nil,
	)

	assert.Equal(t, []uint{2, 1}, idx.ModuleIDs())
	assert.Equal(t, []uint{11, 10}, idx.ModuleTrainings(2))
	assert.Equal(t, []uint{102, 100, 101}, idx.TrainingVideos(11))
}

func TestNewIndexSkipsOrphans(t *testing.T) {
	idx := NewIndex(
		[]trainingModels.Module{module(1, 1)},
		[]trainingModels.Training{
			training(10, 1, 1),
			training(11, 99, 1), // parent module missing
		},
		[]trainingModels.Video{
			video(100, 10, 1),
			video(101, 11, 1), // parent training orphaned
			video(102, 99, 1), // parent training missing
		},
		[]trainingModels.TrainingPrerequisite{
			{TrainingID: 10, RequiresTrainingID: 11}, // target orphaned, dropped
		},
	)

	_, ok := idx.Training(11)
	assert.False(t, ok)
	_, ok = idx.Video(101)
	assert.False(t, ok)
	_, ok = idx.Video(102)
	assert.False(t, ok)

	node, ok := idx.Training(10)
	require.True(t, ok)
	assert.Empty(t, node.PrerequisiteIDs)

	assert.Equal(t, 1, idx.TotalTrainings())
	assert.Equal(t, 1, idx.TotalVideos())
}

func TestIndexNavigation(t *testing.T) {
	idx := NewIndex(
		[]trainingModels.Module{module(1, 1)},
		[]trainingModels.Training{training(10, 1, 1), training(11, 1, 2)},
		[]trainingModels.Video{video(100, 10, 1), video(101, 10, 2), video(110, 11, 1)},
		nil,
	)

	next, ok := idx.NextVideoInTraining(100)
	require.True(t, ok)
	assert.Equal(t, uint(101), next)

	_, ok = idx.NextVideoInTraining(101)
	assert.False(t, ok)

	nextTraining, ok := idx.NextTrainingInModule(10)
	require.True(t, ok)
	assert.Equal(t, uint(11), nextTraining)

	_, ok = idx.NextTrainingInModule(11)
	assert.False(t, ok)

	first, ok := idx.FirstVideo(11)
	require.True(t, ok)
	assert.Equal(t, uint(110), first)

	_, ok = idx.FirstVideo(99)
	assert.False(t, ok)
}

func TestProviderReplace(t *testing.T) {
	p := NewProvider()
	assert.Nil(t, p.Current())
	assert.Empty(t, p.Version())
	assert.True(t, p.LoadedAt().IsZero())

	idx := NewIndex(nil, nil, nil, nil)
	v1 := p.Replace(idx)
	assert.Same(t, idx, p.Current())
	assert.Equal(t, v1, p.Version())
	assert.False(t, p.LoadedAt().IsZero())

	other := NewIndex(nil, nil, nil, nil)
	v2 := p.Replace(other)
	assert.Same(t, other, p.Current())
	assert.NotEqual(t, v1, v2)
}
