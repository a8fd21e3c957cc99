package hierarchy

import (
	trainingModels "trainhub/models/training"

	"gorm.io/gorm"
)

// LoadIndex builds an index snapshot from the local content tables. Only
// active rows participate; ordering is applied again inside NewIndex so the
// index does not depend on query order.
func LoadIndex(db *gorm.DB) (*Index, error) {
	var modules []trainingModels.Module
	if err := db.Where("is_active = ?", true).
		Order("order_index asc, id asc").Find(&modules).Error; err != nil {
		return nil, err
	}

	var trainings []trainingModels.Training
	if err := db.Where("is_active = ?", true).
		Order("order_index asc, id asc").Find(&trainings).Error; err != nil {
		return nil, err
	}

	var videos []trainingModels.Video
	if err := db.Where("is_active = ?", true).
		Order("order_index asc, id asc").Find(&videos).Error; err != nil {
		return nil, err
	}

	var prerequisites []trainingModels.TrainingPrerequisite
	if err := db.Find(&prerequisites).Error; err != nil {
		return nil, err
	}

	return NewIndex(modules, trainings, videos, prerequisites), nil
}
