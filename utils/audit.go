package utils

import (
	"encoding/json"
	"log"
	"time"

	"trainhub/database"
	"trainhub/hierarchy"
	"trainhub/models"
)

// RecordAudit writes one audit trail row. Audit failures are logged and never
// propagated: an audit hiccup must not fail the user-facing operation.
func RecordAudit(userID uint, action, modelName, objectID, description string, detail interface{}, ipAddress, userAgent string) {
	entry := models.AuditLog{
		UserID:      userID,
		Action:      action,
		ModelName:   modelName,
		ObjectID:    objectID,
		Description: description,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Timestamp:   time.Now(),
	}

	if detail != nil {
		raw, err := json.Marshal(detail)
		if err != nil {
			log.Printf("[AUDIT] Failed to marshal detail for %s/%s: %v", modelName, objectID, err)
		} else {
			entry.Detail = raw
		}
	}

	if err := database.Database.Db.Create(&entry).Error; err != nil {
		log.Printf("[AUDIT] Failed to record %s on %s/%s: %v", action, modelName, objectID, err)
	}
}

// RecordHierarchySync writes the audit row for a hierarchy snapshot install.
// System action, so no user is attributed; the snapshot version is the object
// id so installs can be correlated with the sync logs.
func RecordHierarchySync(provider *hierarchy.Provider, source string) {
	idx := provider.Current()
	if idx == nil {
		return
	}

	RecordAudit(0, models.AuditActionSync, "Hierarchy", provider.Version(),
		"Hierarchy snapshot installed", map[string]interface{}{
			"source":    source,
			"modules":   idx.TotalModules(),
			"trainings": idx.TotalTrainings(),
			"videos":    idx.TotalVideos(),
		}, "", "")
}
