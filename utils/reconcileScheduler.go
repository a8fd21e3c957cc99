package utils

import (
	"log"

	"trainhub/config"
	"trainhub/database"
	trainingModels "trainhub/models/training"
	"trainhub/progress"

	"github.com/robfig/cron/v3"
)

// InitializeReconcileScheduler periodically issues certificates for trainings
// a user has fully completed without one being created on the event path,
// e.g. after a crash between the ledger write and issuance. This bounds how
// long issuance can lag completion to one sweep cycle.
func InitializeReconcileScheduler(service *progress.Service) {
	log.Println("[RECONCILE] Initializing certificate reconciliation scheduler...")

	c := cron.New()

	if _, err := c.AddFunc(config.AppConfig.ReconcileCron, func() {
		log.Println("[RECONCILE] Running certificate reconciliation sweep...")
		ReconcileAllUsers(service)
	}); err != nil {
		log.Printf("[RECONCILE] Invalid cron expression %q: %v", config.AppConfig.ReconcileCron, err)
		return
	}

	c.Start()
	log.Printf("[RECONCILE] Reconciliation scheduler started (%s)", config.AppConfig.ReconcileCron)
}

// ReconcileAllUsers sweeps every user holding completed units and issues any
// certificate the event path missed
func ReconcileAllUsers(service *progress.Service) {
	var userIDs []uint
	err := database.Database.Db.Model(&trainingModels.UserProgress{}).
		Where("completed = ?", true).
		Distinct("user_id").
		Limit(config.AppConfig.ReconcileBatchSize).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		log.Printf("[RECONCILE] Failed to fetch candidate users: %v", err)
		return
	}

	issued := 0
	for _, userID := range userIDs {
		n, err := service.ReconcileCertificates(userID)
		if err != nil {
			log.Printf("[RECONCILE] Sweep failed for user %d: %v", userID, err)
			continue
		}
		issued += n
	}

	if issued > 0 {
		log.Printf("[RECONCILE] Issued %d missed certificates across %d users", issued, len(userIDs))
	}
}
