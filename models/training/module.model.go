package training

import "gorm.io/gorm"

// Module represents a top-level category grouping an ordered set of trainings.
// Module rows are owned by the external content service; this engine only
// reads them (the hierarchy sync client is the one writer).
type Module struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category" gorm:"index"`
	OrderIndex  int    `json:"order_index" gorm:"default:0;index"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}
