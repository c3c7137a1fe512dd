package database

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
-- Question catalog shared across all imported surveys
CREATE TABLE IF NOT EXISTS question_bank (
    id BIGSERIAL PRIMARY KEY,
    category TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT 'auto',
    question_text TEXT NOT NULL UNIQUE,
    keyword TEXT
);

-- Survey identity records, one per external source tuple
CREATE TABLE IF NOT EXISTS survey_info (
    id BIGSERIAL PRIMARY KEY,
    client_name TEXT NOT NULL,
    course_name TEXT NOT NULL,
    manager TEXT NOT NULL,
    date DATE NOT NULL,
    category TEXT NOT NULL,
    survey_name TEXT NOT NULL,
    UNIQUE (client_name, course_name, manager, date, category, survey_name)
);

-- Normalized answers pulled from sheets
CREATE TABLE IF NOT EXISTS responses (
    id BIGSERIAL PRIMARY KEY,
    survey_id BIGINT NOT NULL REFERENCES survey_info(id) ON DELETE CASCADE,
    respondent_id TEXT NOT NULL,
    question_id BIGINT NOT NULL REFERENCES question_bank(id),
    answer_value TEXT,
    UNIQUE (survey_id, respondent_id, question_id)
);

CREATE INDEX IF NOT EXISTS idx_responses_survey ON responses(survey_id);
CREATE INDEX IF NOT EXISTS idx_responses_respondent ON responses(survey_id, respondent_id);

-- 360 assessment tables
CREATE TABLE IF NOT EXISTS corporates (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS projects (
    id BIGSERIAL PRIMARY KEY,
    corporate_id BIGINT NOT NULL REFERENCES corporates(id),
    name TEXT NOT NULL,
    year INT NOT NULL,
    status TEXT NOT NULL DEFAULT 'SETUP',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (corporate_id, name, year)
);

CREATE TABLE IF NOT EXISTS leaders (
    id BIGSERIAL PRIMARY KEY,
    project_id BIGINT NOT NULL REFERENCES projects(id),
    name TEXT NOT NULL,
    leader_code TEXT,
    position TEXT,
    department TEXT,
    email TEXT
);

CREATE INDEX IF NOT EXISTS idx_leaders_project ON leaders(project_id);

CREATE TABLE IF NOT EXISTS evaluators (
    id BIGSERIAL PRIMARY KEY,
    project_id BIGINT NOT NULL REFERENCES projects(id),
    name TEXT NOT NULL,
    evaluator_code TEXT,
    email TEXT NOT NULL,
    access_token TEXT UNIQUE,
    is_active BOOLEAN NOT NULL DEFAULT true
);

CREATE INDEX IF NOT EXISTS idx_evaluators_project ON evaluators(project_id);
CREATE INDEX IF NOT EXISTS idx_evaluators_token ON evaluators(access_token);

CREATE TABLE IF NOT EXISTS assignments (
    id BIGSERIAL PRIMARY KEY,
    project_id BIGINT NOT NULL REFERENCES projects(id),
    evaluator_id BIGINT NOT NULL REFERENCES evaluators(id),
    leader_id BIGINT NOT NULL REFERENCES leaders(id),
    relation TEXT,
    project_group TEXT,
    status TEXT NOT NULL DEFAULT 'PENDING',
    completed_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_assignments_project ON assignments(project_id);
CREATE INDEX IF NOT EXISTS idx_assignments_evaluator ON assignments(evaluator_id);

CREATE TABLE IF NOT EXISTS assessment_responses (
    id BIGSERIAL PRIMARY KEY,
    assignment_id BIGINT NOT NULL REFERENCES assignments(id),
    q1_score INT,
    q2_score INT,
    q_score REAL,
    comment TEXT,
    submitted_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_assessment_responses_assignment ON assessment_responses(assignment_id);
`
