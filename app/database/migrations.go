package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	// 1. Add keyword column to question_bank if not exists
	if err := addKeywordColumn(db); err != nil {
		return err
	}

	// 2. Add q_score column to assessment_responses if not exists
	if err := addQScoreColumn(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func addKeywordColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'question_bank'
				AND column_name = 'keyword'
			) THEN
				ALTER TABLE question_bank ADD COLUMN keyword TEXT;
				RAISE NOTICE 'Added keyword column to question_bank';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for keyword column: %v", err)
		return err
	}
	return nil
}

func addQScoreColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'assessment_responses'
				AND column_name = 'q_score'
			) THEN
				ALTER TABLE assessment_responses ADD COLUMN q_score REAL;
				RAISE NOTICE 'Added q_score column to assessment_responses';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for q_score column: %v", err)
		return err
	}
	return nil
}
