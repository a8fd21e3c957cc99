package progress

import (
	"testing"

	"trainhub/hierarchy"
	trainingModels "trainhub/models/training"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoStatus(t *testing.T) {
	assert.Equal(t, VideoNotStarted, VideoStatus(nil))
	assert.Equal(t, VideoNotStarted, VideoStatus(&trainingModels.UserProgress{}))
	assert.Equal(t, VideoInProgress, VideoStatus(&trainingModels.UserProgress{ProgressSeconds: 10}))
	assert.Equal(t, VideoCompleted, VideoStatus(&trainingModels.UserProgress{ProgressSeconds: 95, Completed: true}))

	// Explicitly completed with zero elapsed still reads as completed
	assert.Equal(t, VideoCompleted, VideoStatus(&trainingModels.UserProgress{Completed: true}))
}

func completeUnit(t *testing.T, ledger *Ledger, userID, videoID uint) {
	t.Helper()
	_, err := ledger.Merge(userID, videoID, 1, boolPtr(true))
	require.NoError(t, err)
}

func TestTrainingProgressFraction(t *testing.T) {
	db := newTestDB(t)
	hier := seedFixture(t, db)
	ledger := NewLedger(db, hier)
	eval := NewEvaluator(db, hier)

	fraction, err := eval.TrainingProgress(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fraction)

	completeUnit(t, ledger, 7, 101)
	fraction, err = eval.TrainingProgress(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, fraction)

	// In-progress units do not count toward the fraction
	_, err = ledger.Merge(7, 102, 50, nil)
	require.NoError(t, err)
	fraction, err = eval.TrainingProgress(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, fraction)

	completeUnit(t, ledger, 7, 102)
	fraction, err = eval.TrainingProgress(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, fraction)
}

func TestEmptyTrainingIsVacuouslyComplete(t *testing.T) {
	db := newTestDB(t)
	hier := seedFixture(t, db)
	eval := NewEvaluator(db, hier)

	// Training 3 has no videos
	fraction, err := eval.TrainingProgress(7, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, fraction)

	done, err := eval.TrainingFullyCompleted(7, 3)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestFullyCompletedAgreesWithFraction(t *testing.T) {
	db := newTestDB(t)
	hier := seedFixture(t, db)
	ledger := NewLedger(db, hier)
	eval := NewEvaluator(db, hier)

	check := func() {
		t.Helper()
		fraction, err := eval.TrainingProgress(7, 1)
		require.NoError(t, err)
		done, err := eval.TrainingFullyCompleted(7, 1)
		require.NoError(t, err)
		assert.Equal(t, fraction == 1.0, done)
	}

	check()
	completeUnit(t, ledger, 7, 101)
	check()
	completeUnit(t, ledger, 7, 102)
	check()
}

func TestModuleProgressIsUnweightedMean(t *testing.T) {
	db := newTestDB(t)
	hier := seedFixture(t, db)
	ledger := NewLedger(db, hier)
	eval := NewEvaluator(db, hier)

	// Module 1: training 1 at 0.5, training 2 at 0, training 3 vacuously 1.0
	completeUnit(t, ledger, 7, 101)
	fraction, err := eval.ModuleProgress(7, 1)
	require.NoError(t, err)
	assert.InDelta(t, (0.5+0.0+1.0)/3.0, fraction, 1e-9)

	completeUnit(t, ledger, 7, 102)
	completeUnit(t, ledger, 7, 201)
	fraction, err = eval.ModuleProgress(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, fraction)

	// Other users stay at their own aggregates
	fraction, err = eval.ModuleProgress(8, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, fraction, 1e-9)
}

func TestOverallProgress(t *testing.T) {
	db := newTestDB(t)
	hier := seedFixture(t, db)
	ledger := NewLedger(db, hier)
	eval := NewEvaluator(db, hier)

	fraction, err := eval.OverallProgress(7)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fraction)

	// 4 units in the snapshot
	completeUnit(t, ledger, 7, 101)
	fraction, err = eval.OverallProgress(7)
	require.NoError(t, err)
	assert.Equal(t, 0.25, fraction)
}

func TestNextRecommendedUnit(t *testing.T) {
	db := newTestDB(t)
	hier := seedFixture(t, db)
	ledger := NewLedger(db, hier)
	eval := NewEvaluator(db, hier)

	// Within training 1: 101 -> 102
	next, err := eval.NextRecommendedUnit(7, 101)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, uint(102), next.ID)

	// End of training 1: training 2 requires training 1, not yet satisfied
	next, err = eval.NextRecommendedUnit(7, 102)
	require.NoError(t, err)
	assert.Nil(t, next)

	completeUnit(t, ledger, 7, 101)
	completeUnit(t, ledger, 7, 102)
	next, err = eval.NextRecommendedUnit(7, 102)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, uint(201), next.ID)

	// End of training 2: training 3 is empty, nothing to recommend
	next, err = eval.NextRecommendedUnit(7, 201)
	require.NoError(t, err)
	assert.Nil(t, next)

	// Last training of module 2: hierarchy exhausted
	next, err = eval.NextRecommendedUnit(7, 401)
	require.NoError(t, err)
	assert.Nil(t, next)

	_, err = eval.NextRecommendedUnit(7, 9999)
	assert.ErrorIs(t, err, ErrUnknownContentUnit)
}

func TestEvaluatorUnknownIDs(t *testing.T) {
	db := newTestDB(t)
	hier := seedFixture(t, db)
	eval := NewEvaluator(db, hier)

	_, err := eval.TrainingProgress(7, 9999)
	assert.ErrorIs(t, err, ErrUnknownContentUnit)

	_, err = eval.ModuleProgress(7, 9999)
	assert.ErrorIs(t, err, ErrUnknownContentUnit)
}

func TestEvaluationSurvivesSnapshotReload(t *testing.T) {
	db := newTestDB(t)
	hier := seedFixture(t, db)
	ledger := NewLedger(db, hier)
	eval := NewEvaluator(db, hier)

	completeUnit(t, ledger, 7, 401)

	// Re-syncing the hierarchy must not disturb derived completion
	oldVersion := hier.Version()
	idx, err := hierarchy.LoadIndex(db)
	require.NoError(t, err)
	hier.Replace(idx)
	assert.NotEqual(t, oldVersion, hier.Version())

	done, err := eval.TrainingFullyCompleted(7, 4)
	require.NoError(t, err)
	assert.True(t, done)
}
