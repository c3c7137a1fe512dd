package database

import (
	"database/sql"
	"fmt"

	"github.com/qkrtlwls123-a11y/leadership-360/app/models"
)

// Store wraps the shared connection pool with the queries the sync engine
// needs. Identity lookups are single atomic upserts against the unique
// constraints, so concurrent first-creation converges on one row instead
// of failing or duplicating.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// GetOrCreateQuestion resolves a column header to its question bank ID,
// inserting a new catalog entry on first sight. Matching on question_text
// is exact and case-sensitive.
func (s *Store) GetOrCreateQuestion(category, text string) (int64, error) {
	var id int64
	// The no-op DO UPDATE makes RETURNING yield the existing id on conflict
	// without touching the original category or type.
	err := s.DB.QueryRow(`
		INSERT INTO question_bank (category, type, question_text, keyword)
		VALUES ($1, 'auto', $2, 'auto')
		ON CONFLICT (question_text) DO UPDATE SET question_text = EXCLUDED.question_text
		RETURNING id
	`, category, text).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolve question %q: %w", text, err)
	}
	return id, nil
}

// UpsertSurveyInfo resolves the six-field identity tuple to a survey ID,
// inserting on first sight. Re-registering the same tuple always returns
// the same ID.
func (s *Store) UpsertSurveyInfo(src models.SurveySource) (int64, error) {
	var id int64
	err := s.DB.QueryRow(`
		INSERT INTO survey_info (client_name, course_name, manager, date, category, survey_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (client_name, course_name, manager, date, category, survey_name)
		DO UPDATE SET survey_name = EXCLUDED.survey_name
		RETURNING id
	`, src.Client, src.Course, src.Manager, src.Date, src.Category, src.SurveyName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolve survey %q: %w", src.SurveyName, err)
	}
	return id, nil
}

// HasResponses reports whether any answers are already stored for the
// respondent. Used to reconcile rows whose DB insert succeeded but whose
// sheet marker was never written back.
func (s *Store) HasResponses(surveyID int64, respondentID string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM responses WHERE survey_id = $1 AND respondent_id = $2)
	`, surveyID, respondentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check responses for %s: %w", respondentID, err)
	}
	return exists, nil
}

// InsertResponses writes all answers for one sheet row in a single
// transaction. On any failure the whole row is rolled back so the next
// run can retry it.
func (s *Store) InsertResponses(surveyID int64, respondentID string, answers []models.Answer) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin row transaction: %w", err)
	}

	for _, a := range answers {
		if _, err := tx.Exec(`
			INSERT INTO responses (survey_id, respondent_id, question_id, answer_value)
			VALUES ($1, $2, $3, $4)
		`, surveyID, respondentID, a.QuestionID, a.Value); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert response for %s: %w", respondentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("commit row for %s: %w", respondentID, err)
	}
	return nil
}

// ListResponses returns the stored answers for one survey, newest first.
func (s *Store) ListResponses(surveyID int64) ([]*models.SurveyResponse, error) {
	rows, err := s.DB.Query(`
		SELECT id, survey_id, respondent_id, question_id, COALESCE(answer_value, '')
		FROM responses
		WHERE survey_id = $1
		ORDER BY id DESC
	`, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.SurveyResponse
	for rows.Next() {
		r := &models.SurveyResponse{}
		if err := rows.Scan(&r.ID, &r.SurveyID, &r.RespondentID, &r.QuestionID, &r.AnswerValue); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListSurveys returns every survey identity record.
func (s *Store) ListSurveys() ([]*models.SurveyInfo, error) {
	rows, err := s.DB.Query(`
		SELECT id, client_name, course_name, manager, to_char(date, 'YYYY-MM-DD'), category, survey_name
		FROM survey_info
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.SurveyInfo
	for rows.Next() {
		si := &models.SurveyInfo{}
		if err := rows.Scan(&si.ID, &si.ClientName, &si.CourseName, &si.Manager, &si.Date, &si.Category, &si.SurveyName); err != nil {
			return nil, err
		}
		out = append(out, si)
	}
	return out, rows.Err()
}
