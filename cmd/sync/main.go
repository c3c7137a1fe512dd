package main

import (
	"context"
	"fmt"
	"log"

	"github.com/qkrtlwls123-a11y/leadership-360/app/config"
	"github.com/qkrtlwls123-a11y/leadership-360/app/services"
)

// Runs a full sync of every configured survey source and prints the
// per-source results. Intended for cron or manual runs.
func main() {
	cfg := config.Load()
	config.InitDB()
	defer config.GetDB().Close()

	summary, err := services.RunSync(context.Background(), cfg, config.GetDB())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(summary.Message)
	for _, res := range summary.Results {
		if res.Error != "" {
			fmt.Printf("[%s] error: %s\n", res.SurveyName, res.Error)
		} else {
			fmt.Printf("[%s] synced %d rows\n", res.SurveyName, res.SyncedRows)
		}
	}
}
