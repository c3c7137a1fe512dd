package services

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/qkrtlwls123-a11y/leadership-360/app/config"
)

// StartScheduler starts the background task scheduler
func StartScheduler(cfg *config.Config, db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger the nightly sheet sync at 2:00 AM
			if now.Hour() == 2 && now.Minute() == 0 {
				log.Println("Triggering scheduled sync [02:00]...")

				summary, err := RunSync(context.Background(), cfg, db)
				if err != nil {
					log.Printf("Scheduled sync failed: %v", err)
					continue
				}
				for _, res := range summary.Results {
					if res.Error != "" {
						log.Printf("[%s] sync error: %s", res.SurveyName, res.Error)
					} else {
						log.Printf("[%s] synced %d rows", res.SurveyName, res.SyncedRows)
					}
				}
			}
		}
	}()
}
