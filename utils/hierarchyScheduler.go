package utils

import (
	"log"

	"trainhub/config"
	"trainhub/database"
	"trainhub/hierarchy"

	"github.com/robfig/cron/v3"
)

// InitializeHierarchyScheduler loads the initial hierarchy snapshot and keeps
// it refreshed from the content service on the configured cron schedule.
func InitializeHierarchyScheduler(provider *hierarchy.Provider) {
	log.Println("[HIERARCHY-SYNC] Initializing hierarchy scheduler...")

	// Initial load: prefer the content service, fall back to whatever the
	// local tables hold from the last successful sync.
	if err := hierarchy.SyncFromContentService(database.Database.Db, provider); err != nil {
		log.Printf("[HIERARCHY-SYNC] Content service sync failed, falling back to local tables: %v", err)
		if err := hierarchy.LoadFromDatabase(database.Database.Db, provider); err != nil {
			log.Printf("[HIERARCHY-SYNC] Local load failed: %v", err)
		} else {
			RecordHierarchySync(provider, "local-tables")
		}
	} else {
		RecordHierarchySync(provider, "content-service")
	}

	c := cron.New()

	if _, err := c.AddFunc(config.AppConfig.HierarchySyncCron, func() {
		log.Println("[HIERARCHY-SYNC] Running scheduled hierarchy sync...")
		if err := hierarchy.SyncFromContentService(database.Database.Db, provider); err != nil {
			log.Printf("[HIERARCHY-SYNC] Scheduled sync failed, keeping current snapshot: %v", err)
			return
		}
		RecordHierarchySync(provider, "content-service")
	}); err != nil {
		log.Printf("[HIERARCHY-SYNC] Invalid cron expression %q: %v", config.AppConfig.HierarchySyncCron, err)
		return
	}

	c.Start()
	log.Printf("[HIERARCHY-SYNC] Hierarchy scheduler started (%s)", config.AppConfig.HierarchySyncCron)
}
