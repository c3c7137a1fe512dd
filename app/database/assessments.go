package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qkrtlwls123-a11y/leadership-360/app/models"
)

// relationMap normalizes free-form relation labels to their codes.
var relationMap = map[string]string{
	"boss": "BOSS",
	"peer": "PEER",
	"sub":  "SUB",
	"self": "SELF",
}

func normalizeRelation(relation string) string {
	r := strings.TrimSpace(relation)
	if code, ok := relationMap[strings.ToLower(r)]; ok {
		return code
	}
	return r
}

func newAccessToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
}

func CreateCorporate(db *sql.DB, name string) (int64, error) {
	var id int64
	err := db.QueryRow(`
		INSERT INTO corporates (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, strings.TrimSpace(name)).Scan(&id)
	return id, err
}

func GetAllCorporates(db *sql.DB) ([]*models.Corporate, error) {
	rows, err := db.Query(`SELECT id, name, created_at FROM corporates ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var corporates []*models.Corporate
	for rows.Next() {
		c := &models.Corporate{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		corporates = append(corporates, c)
	}
	return corporates, rows.Err()
}

// GetOrCreateProject resolves a corporate/project pair, creating either
// on first sight.
func GetOrCreateProject(db *sql.DB, corpName, projectName string, year int) (int64, error) {
	corpID, err := CreateCorporate(db, corpName)
	if err != nil {
		return 0, fmt.Errorf("resolve corporate %q: %w", corpName, err)
	}

	var projID int64
	err = db.QueryRow(`
		INSERT INTO projects (corporate_id, name, year) VALUES ($1, $2, $3)
		ON CONFLICT (corporate_id, name, year) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, corpID, strings.TrimSpace(projectName), year).Scan(&projID)
	if err != nil {
		return 0, fmt.Errorf("resolve project %q: %w", projectName, err)
	}
	return projID, nil
}

func GetAllProjects(db *sql.DB) ([]*models.Project, error) {
	rows, err := db.Query(`
		SELECT p.id, p.corporate_id, p.name, p.year, p.status, p.created_at, c.name
		FROM projects p
		JOIN corporates c ON p.corporate_id = c.id
		ORDER BY c.name, p.year DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p := &models.Project{}
		if err := rows.Scan(&p.ID, &p.CorporateID, &p.Name, &p.Year, &p.Status, &p.CreatedAt, &p.CorporateName); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func GetLeadersByProject(db *sql.DB, projectID int64) ([]*models.Leader, error) {
	rows, err := db.Query(`
		SELECT id, project_id, name, COALESCE(leader_code, ''), COALESCE(position, ''),
		       COALESCE(department, ''), COALESCE(email, '')
		FROM leaders WHERE project_id = $1 ORDER BY name
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaders []*models.Leader
	for rows.Next() {
		l := &models.Leader{}
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.Name, &l.LeaderCode, &l.Position, &l.Department, &l.Email); err != nil {
			return nil, err
		}
		leaders = append(leaders, l)
	}
	return leaders, rows.Err()
}

func GetEvaluatorsByProject(db *sql.DB, projectID int64) ([]*models.Evaluator, error) {
	rows, err := db.Query(`
		SELECT id, project_id, name, COALESCE(evaluator_code, ''), email,
		       COALESCE(access_token, ''), is_active
		FROM evaluators WHERE project_id = $1 ORDER BY name
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluators []*models.Evaluator
	for rows.Next() {
		e := &models.Evaluator{}
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Name, &e.EvaluatorCode, &e.Email, &e.AccessToken, &e.IsActive); err != nil {
			return nil, err
		}
		evaluators = append(evaluators, e)
	}
	return evaluators, rows.Err()
}

// ProcessRosterUpload ingests a bulk roster for a project: evaluators are
// deduplicated by email, leaders by (name, code), and an assignment is
// created only when the evaluator/leader pair is new. Returns created and
// skipped counts.
func ProcessRosterUpload(db *sql.DB, projectID int64, roster []models.RosterRow) (created, skipped int, err error) {
	for _, row := range roster {
		email := strings.TrimSpace(row.EvaluatorEmail)
		leaderName := strings.TrimSpace(row.LeaderName)
		if email == "" || leaderName == "" {
			skipped++
			continue
		}

		var evID int64
		err = db.QueryRow(`SELECT id FROM evaluators WHERE project_id = $1 AND email = $2`,
			projectID, email).Scan(&evID)
		if err == sql.ErrNoRows {
			err = db.QueryRow(`
				INSERT INTO evaluators (project_id, name, evaluator_code, email, access_token)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`, projectID, strings.TrimSpace(row.EvaluatorName), strings.TrimSpace(row.EvaluatorCode),
				email, newAccessToken()).Scan(&evID)
		}
		if err != nil {
			return created, skipped, fmt.Errorf("resolve evaluator %s: %w", email, err)
		}

		leaderCode := strings.TrimSpace(row.LeaderCode)
		var ldID int64
		err = db.QueryRow(`
			SELECT id FROM leaders
			WHERE project_id = $1 AND name = $2 AND COALESCE(leader_code, '') = $3
		`, projectID, leaderName, leaderCode).Scan(&ldID)
		if err == sql.ErrNoRows {
			err = db.QueryRow(`
				INSERT INTO leaders (project_id, name, leader_code, department, position)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`, projectID, leaderName, leaderCode, row.ProjectGroup, row.LeaderPosition).Scan(&ldID)
		}
		if err != nil {
			return created, skipped, fmt.Errorf("resolve leader %s: %w", leaderName, err)
		}

		var assignmentID int64
		err = db.QueryRow(`SELECT id FROM assignments WHERE evaluator_id = $1 AND leader_id = $2`,
			evID, ldID).Scan(&assignmentID)
		if err == sql.ErrNoRows {
			_, err = db.Exec(`
				INSERT INTO assignments (project_id, evaluator_id, leader_id, relation, project_group)
				VALUES ($1, $2, $3, $4, $5)
			`, projectID, evID, ldID, normalizeRelation(row.Relation), row.ProjectGroup)
			if err != nil {
				return created, skipped, fmt.Errorf("create assignment: %w", err)
			}
			created++
			continue
		}
		if err != nil {
			return created, skipped, fmt.Errorf("check assignment: %w", err)
		}
		skipped++
	}
	return created, skipped, nil
}

// GetEvaluatorByToken finds an active evaluator by their access token.
func GetEvaluatorByToken(db *sql.DB, token string) (*models.Evaluator, error) {
	e := &models.Evaluator{}
	err := db.QueryRow(`
		SELECT id, project_id, name, COALESCE(evaluator_code, ''), email, access_token, is_active
		FROM evaluators WHERE access_token = $1 AND is_active = true
	`, token).Scan(&e.ID, &e.ProjectID, &e.Name, &e.EvaluatorCode, &e.Email, &e.AccessToken, &e.IsActive)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetAssignmentsByEvaluator lists an evaluator's assignments with leader details.
func GetAssignmentsByEvaluator(db *sql.DB, evaluatorID int64) ([]*models.Assignment, error) {
	rows, err := db.Query(`
		SELECT a.id, a.project_id, a.evaluator_id, a.leader_id, COALESCE(a.relation, ''),
		       COALESCE(a.project_group, ''), a.status, a.completed_at,
		       l.name, COALESCE(l.position, ''), COALESCE(l.department, '')
		FROM assignments a
		JOIN leaders l ON a.leader_id = l.id
		WHERE a.evaluator_id = $1
		ORDER BY a.status, l.name
	`, evaluatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		a := &models.Assignment{}
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.EvaluatorID, &a.LeaderID, &a.Relation,
			&a.ProjectGroup, &a.Status, &a.CompletedAt, &a.LeaderName, &a.Position, &a.Department); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// SaveAssessmentResponse stores a submitted rating and marks its assignment
// completed, in one transaction.
func SaveAssessmentResponse(db *sql.DB, assignmentID int64, q1, q2 int, comment string) error {
	qScore := float64(q1+q2) / 2

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO assessment_responses (assignment_id, q1_score, q2_score, q_score, comment)
		VALUES ($1, $2, $3, $4, $5)
	`, assignmentID, q1, q2, qScore, comment); err != nil {
		tx.Rollback()
		return fmt.Errorf("save response: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE assignments SET status = 'COMPLETED', completed_at = $1 WHERE id = $2
	`, time.Now(), assignmentID); err != nil {
		tx.Rollback()
		return fmt.Errorf("complete assignment: %w", err)
	}

	return tx.Commit()
}

// GetProjectResponses lists submitted ratings for a project, newest first.
func GetProjectResponses(db *sql.DB, projectID int64) ([]*models.AssessmentResponse, error) {
	rows, err := db.Query(`
		SELECT r.id, r.assignment_id, COALESCE(r.q1_score, 0), COALESCE(r.q2_score, 0),
		       COALESCE(r.q_score, 0), COALESCE(r.comment, ''), r.submitted_at,
		       l.name, e.name, COALESCE(a.relation, '')
		FROM assessment_responses r
		JOIN assignments a ON r.assignment_id = a.id
		JOIN leaders l ON a.leader_id = l.id
		JOIN evaluators e ON a.evaluator_id = e.id
		WHERE a.project_id = $1
		ORDER BY r.submitted_at DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []*models.AssessmentResponse
	for rows.Next() {
		r := &models.AssessmentResponse{}
		if err := rows.Scan(&r.ID, &r.AssignmentID, &r.Q1Score, &r.Q2Score, &r.QScore,
			&r.Comment, &r.SubmittedAt, &r.LeaderName, &r.EvaluatorName, &r.Relation); err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}
