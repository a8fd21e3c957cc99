package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit actions recorded by the engine and its API layer
const (
	AuditActionView     = "VIEW"
	AuditActionUpdate   = "UPDATE"
	AuditActionComplete = "COMPLETE"
	AuditActionSync     = "SYNC"
)

// AuditLog records user-visible actions for compliance reporting
type AuditLog struct {
	gorm.Model
	UserID      uint           `json:"user_id" gorm:"index"`
	Action      string         `json:"action" gorm:"size:20;index"`
	ModelName   string         `json:"model_name" gorm:"size:100;index"`
	ObjectID    string         `json:"object_id" gorm:"size:100"`
	Description string         `json:"description"`
	Detail      datatypes.JSON `json:"detail"`
	IPAddress   string         `json:"ip_address" gorm:"size:45"`
	UserAgent   string         `json:"user_agent"`
	Timestamp   time.Time      `json:"timestamp" gorm:"index"`
}
