package progress

import (
	"fmt"

	"trainhub/hierarchy"
	trainingModels "trainhub/models/training"

	"gorm.io/gorm"
)

// VideoState is the derived watch status of one content unit
type VideoState string

const (
	VideoNotStarted VideoState = "NOT_STARTED"
	VideoInProgress VideoState = "IN_PROGRESS"
	VideoCompleted  VideoState = "COMPLETED"
)

// VideoStatus derives the watch status of a unit from its progress record.
// A completed record stays completed regardless of elapsed seconds, so a
// unit completed via the explicit client signal never reads as not started.
func VideoStatus(record *trainingModels.UserProgress) VideoState {
	if record == nil {
		return VideoNotStarted
	}
	if record.Completed {
		return VideoCompleted
	}
	if record.ProgressSeconds == 0 {
		return VideoNotStarted
	}
	return VideoInProgress
}

// Evaluator derives training and module completion from the ledger and the
// hierarchy snapshot. It never mutates state, and concurrent evaluations over
// the same rows converge to the same result.
type Evaluator struct {
	db   *gorm.DB
	hier *hierarchy.Provider
}

// NewEvaluator creates an Evaluator over the given database and hierarchy
func NewEvaluator(db *gorm.DB, hier *hierarchy.Provider) *Evaluator {
	return &Evaluator{db: db, hier: hier}
}

func (e *Evaluator) index() (*hierarchy.Index, error) {
	idx := e.hier.Current()
	if idx == nil {
		return nil, fmt.Errorf("%w: hierarchy snapshot not loaded", ErrStorageUnavailable)
	}
	return idx, nil
}

// completedUnits returns which of the given videos the user has completed
func (e *Evaluator) completedUnits(userID uint, videoIDs []uint) (map[uint]bool, error) {
	completed := make(map[uint]bool, len(videoIDs))
	if len(videoIDs) == 0 {
		return completed, nil
	}

	var rows []trainingModels.UserProgress
	err := e.db.
		Where("user_id = ? AND video_id IN ? AND completed = ?", userID, videoIDs, true).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	for _, row := range rows {
		completed[row.VideoID] = true
	}
	return completed, nil
}

// TrainingProgress returns the user's completion fraction for a training in
// [0, 1]. A training with zero units is complete by definition so empty
// placeholder trainings never hold back module aggregates.
func (e *Evaluator) TrainingProgress(userID, trainingID uint) (float64, error) {
	idx, err := e.index()
	if err != nil {
		return 0, err
	}
	if _, ok := idx.Training(trainingID); !ok {
		return 0, fmt.Errorf("%w: training %d", ErrUnknownContentUnit, trainingID)
	}

	videoIDs := idx.TrainingVideos(trainingID)
	if len(videoIDs) == 0 {
		return 1.0, nil
	}

	completed, err := e.completedUnits(userID, videoIDs)
	if err != nil {
		return 0, err
	}
	return float64(len(completed)) / float64(len(videoIDs)), nil
}

// TrainingFullyCompleted reports whether every unit of the training is
// individually completed. The fraction and the per-unit check are both
// evaluated and must agree; the strict per-unit rule is the guard against a
// future fractional-counting scheme drifting from "all units done".
func (e *Evaluator) TrainingFullyCompleted(userID, trainingID uint) (bool, error) {
	idx, err := e.index()
	if err != nil {
		return false, err
	}
	if _, ok := idx.Training(trainingID); !ok {
		return false, fmt.Errorf("%w: training %d", ErrUnknownContentUnit, trainingID)
	}

	videoIDs := idx.TrainingVideos(trainingID)
	completed, err := e.completedUnits(userID, videoIDs)
	if err != nil {
		return false, err
	}

	allDone := true
	for _, id := range videoIDs {
		if !completed[id] {
			allDone = false
			break
		}
	}

	fraction := 1.0
	if len(videoIDs) > 0 {
		fraction = float64(len(completed)) / float64(len(videoIDs))
	}

	return allDone && fraction == 1.0, nil
}

// ModuleProgress returns the arithmetic mean of the user's training fractions
// within the module. Unweighted: a short training and a long training
// contribute equally to the displayed percentage.
func (e *Evaluator) ModuleProgress(userID, moduleID uint) (float64, error) {
	idx, err := e.index()
	if err != nil {
		return 0, err
	}
	if _, ok := idx.Module(moduleID); !ok {
		return 0, fmt.Errorf("%w: module %d", ErrUnknownContentUnit, moduleID)
	}

	trainingIDs := idx.ModuleTrainings(moduleID)
	if len(trainingIDs) == 0 {
		return 1.0, nil
	}

	var sum float64
	for _, id := range trainingIDs {
		fraction, err := e.TrainingProgress(userID, id)
		if err != nil {
			return 0, err
		}
		sum += fraction
	}
	return sum / float64(len(trainingIDs)), nil
}

// OverallProgress returns the user's completed fraction across every unit in
// the snapshot, for dashboard display.
func (e *Evaluator) OverallProgress(userID uint) (float64, error) {
	idx, err := e.index()
	if err != nil {
		return 0, err
	}

	total := idx.TotalVideos()
	if total == 0 {
		return 0, nil
	}

	var completed int64
	err = e.db.Model(&trainingModels.UserProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&completed).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return float64(completed) / float64(total), nil
}

// NextRecommendedUnit returns the advisory next unit after videoID: the next
// unit in the same training, else the first unit of the next training in the
// module when that training's prerequisites are all fully completed, else
// nil (training and module exhausted). Never an access-control decision.
func (e *Evaluator) NextRecommendedUnit(userID, videoID uint) (*hierarchy.VideoNode, error) {
	idx, err := e.index()
	if err != nil {
		return nil, err
	}

	video, ok := idx.Video(videoID)
	if !ok {
		return nil, fmt.Errorf("%w: video %d", ErrUnknownContentUnit, videoID)
	}

	if nextID, ok := idx.NextVideoInTraining(videoID); ok {
		next, _ := idx.Video(nextID)
		return next, nil
	}

	nextTrainingID, ok := idx.NextTrainingInModule(video.TrainingID)
	if !ok {
		return nil, nil
	}

	satisfied, err := e.prerequisitesSatisfied(userID, nextTrainingID, idx)
	if err != nil {
		return nil, err
	}
	if !satisfied {
		return nil, nil
	}

	firstID, ok := idx.FirstVideo(nextTrainingID)
	if !ok {
		return nil, nil
	}
	next, _ := idx.Video(firstID)
	return next, nil
}

func (e *Evaluator) prerequisitesSatisfied(userID, trainingID uint, idx *hierarchy.Index) (bool, error) {
	node, ok := idx.Training(trainingID)
	if !ok {
		return false, nil
	}
	for _, required := range node.PrerequisiteIDs {
		done, err := e.TrainingFullyCompleted(userID, required)
		if err != nil {
			return false, err
		}
		if !done {
			return false, nil
		}
	}
	return true, nil
}
