package training

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress is the per-(user, video) watch state. ProgressSeconds is
// monotonically non-decreasing over the lifetime of the row, Completed never
// reverts to false once set, and CompletedAt is stamped exactly once.
type UserProgress struct {
	gorm.Model
	UserID          uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_video"`
	VideoID         uint       `json:"video_id" gorm:"not null;uniqueIndex:idx_user_video"`
	ProgressSeconds int        `json:"progress_seconds" gorm:"default:0"`
	Completed       bool       `json:"completed" gorm:"default:false;index"`
	LastWatched     time.Time  `json:"last_watched"`
	CompletedAt     *time.Time `json:"completed_at"`
}
