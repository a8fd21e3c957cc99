package training

import "gorm.io/gorm"

// Training represents an ordered course inside a module and is the unit of
// certification.
type Training struct {
	gorm.Model
	ModuleID        uint   `json:"module_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	OrderIndex      int    `json:"order_index" gorm:"default:0;index"`
	IsActive        bool   `json:"is_active" gorm:"default:true"`
}

// TrainingPrerequisite declares that a training requires another training to
// be fully completed first. Informational for this engine: the next-unit
// recommendation consults it, access control does not.
type TrainingPrerequisite struct {
	gorm.Model
	TrainingID         uint `json:"training_id" gorm:"index;not null"`
	RequiresTrainingID uint `json:"requires_training_id" gorm:"index;not null"`
}
