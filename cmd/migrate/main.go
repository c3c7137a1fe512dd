package main

import (
	"log"

	"github.com/qkrtlwls123-a11y/leadership-360/app/config"
	"github.com/qkrtlwls123-a11y/leadership-360/app/database"
)

// Creates the schema and applies pending migrations, then exits.
func main() {
	config.Load()
	config.InitDB()
	defer config.GetDB().Close()

	if err := database.CreateSchema(config.GetDB()); err != nil {
		log.Fatal("Failed to create schema:", err)
	}
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	log.Println("Schema is up to date")
}
