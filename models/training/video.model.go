package training

import "gorm.io/gorm"

// Video represents a single playable content unit within a training.
// DurationSeconds may be 0 when the duration is unknown; completion then
// requires an explicit signal from the playback client.
type Video struct {
	gorm.Model
	TrainingID      uint   `json:"training_id" gorm:"index;not null"`
	Title           string `json:"title"`
	VideoURL        string `json:"video_url"`
	DurationSeconds int    `json:"duration_seconds" gorm:"default:0"`
	OrderIndex      int    `json:"order_index" gorm:"default:0;index"`
	IsActive        bool   `json:"is_active" gorm:"default:true"`
}
