package progress

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"trainhub/hierarchy"
	trainingModels "trainhub/models/training"

	"gorm.io/gorm"
)

// Ledger owns the lifecycle of UserProgress rows. Merge is monotonic and
// idempotent: replayed or out-of-order events that report no new progress
// leave the row byte-for-byte unchanged.
type Ledger struct {
	db   *gorm.DB
	hier *hierarchy.Provider

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLedger creates a Ledger over the given database and hierarchy snapshot
func NewLedger(db *gorm.DB, hier *hierarchy.Provider) *Ledger {
	return &Ledger{
		db:    db,
		hier:  hier,
		locks: make(map[string]*sync.Mutex),
	}
}

// keyLock returns the mutex guarding one (user, video) pair. Two concurrent
// merges for the same pair must not both read the same stale elapsed value;
// merges for different pairs proceed independently.
func (l *Ledger) keyLock(userID, videoID uint) *sync.Mutex {
	key := fmt.Sprintf("%d:%d", userID, videoID)

	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	return lock
}

// Merge applies one playback-progress event to the (user, video) row.
// The stored elapsed value becomes max(stored, observed); completion, once
// derived, never reverts and its timestamp is stamped exactly once.
// explicitCompleted may only assert completion; a false value is ignored.
func (l *Ledger) Merge(userID, videoID uint, observedSeconds int, explicitCompleted *bool) (*trainingModels.UserProgress, error) {
	if observedSeconds < 0 {
		return nil, fmt.Errorf("%w: observed seconds must be non-negative", ErrInvalidInput)
	}

	idx := l.hier.Current()
	if idx == nil {
		return nil, fmt.Errorf("%w: hierarchy snapshot not loaded", ErrStorageUnavailable)
	}

	video, ok := idx.Video(videoID)
	if !ok {
		return nil, fmt.Errorf("%w: video %d", ErrUnknownContentUnit, videoID)
	}

	if bound := MaxPlausibleSeconds(video.DurationSeconds); bound > 0 && observedSeconds > bound {
		return nil, fmt.Errorf("%w: observed seconds %d exceeds plausible bound %d", ErrInvalidInput, observedSeconds, bound)
	}

	explicit := explicitCompleted != nil && *explicitCompleted

	lock := l.keyLock(userID, videoID)
	lock.Lock()
	defer lock.Unlock()

	tx := l.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, tx.Error)
	}

	now := time.Now()

	var record trainingModels.UserProgress
	err := tx.Where("user_id = ? AND video_id = ?", userID, videoID).First(&record).Error
	created := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = trainingModels.UserProgress{
			UserID:      userID,
			VideoID:     videoID,
			LastWatched: now,
		}
		created = true
	case err != nil:
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	changed := created

	// Monotonic merge: duplicates and stale replays gain nothing
	if observedSeconds > record.ProgressSeconds {
		record.ProgressSeconds = observedSeconds
		record.LastWatched = now
		changed = true
	}

	if !record.Completed {
		completes := false
		if video.DurationSeconds > 0 {
			completes = explicit || ThresholdMet(video.DurationSeconds, record.ProgressSeconds)
		} else {
			// Unknown duration: elapsed time alone proves nothing
			completes = explicit && record.ProgressSeconds > 0
		}
		if completes {
			record.Completed = true
			record.CompletedAt = &now
			record.LastWatched = now
			changed = true
		}
	}

	if !changed {
		tx.Rollback()
		return &record, nil
	}

	if err := tx.Save(&record).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return &record, nil
}

// Record reads the (user, video) row, returning nil when no event has been
// recorded yet.
func (l *Ledger) Record(userID, videoID uint) (*trainingModels.UserProgress, error) {
	var record trainingModels.UserProgress
	err := l.db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return &record, nil
}
