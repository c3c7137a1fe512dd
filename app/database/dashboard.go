package database

import (
	"database/sql"

	"github.com/qkrtlwls123-a11y/leadership-360/app/models"
)

// GetDashboardStats returns statistics for the admin dashboard
func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := db.QueryRow("SELECT COUNT(*) FROM corporates").Scan(&stats.TotalCorporates)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&stats.TotalProjects)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow("SELECT COUNT(*) FROM leaders").Scan(&stats.TotalLeaders)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow("SELECT COUNT(*) FROM evaluators WHERE is_active = true").Scan(&stats.TotalEvaluators)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow("SELECT COUNT(*) FROM assessment_responses").Scan(&stats.TotalResponses)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow("SELECT COUNT(*) FROM responses").Scan(&stats.SyncedResponses)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// GetProjectProgress aggregates assignment completion for every project.
func GetProjectProgress(db *sql.DB) ([]*models.ProjectProgress, error) {
	rows, err := db.Query(`
		SELECT c.name AS corporate, p.id, p.name, p.year,
		       COUNT(a.id) AS total,
		       COALESCE(SUM(CASE WHEN a.status = 'COMPLETED' THEN 1 ELSE 0 END), 0) AS done
		FROM projects p
		JOIN corporates c ON p.corporate_id = c.id
		LEFT JOIN assignments a ON p.id = a.project_id
		GROUP BY c.name, p.id, p.name, p.year
		ORDER BY c.name, p.year DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var progress []*models.ProjectProgress
	for rows.Next() {
		pp := &models.ProjectProgress{}
		if err := rows.Scan(&pp.Corporate, &pp.ProjectID, &pp.ProjectName, &pp.Year, &pp.Total, &pp.Done); err != nil {
			return nil, err
		}
		if pp.Total > 0 {
			pp.ProgressPct = float64(pp.Done) / float64(pp.Total) * 100
		}
		progress = append(progress, pp)
	}
	return progress, rows.Err()
}

// GetLeaderSummary aggregates completion per leader and relation for a project.
func GetLeaderSummary(db *sql.DB, projectID int64) ([]*models.LeaderSummary, error) {
	rows, err := db.Query(`
		SELECT l.name AS leader_name, COALESCE(a.relation, ''),
		       SUM(CASE WHEN a.status = 'COMPLETED' THEN 1 ELSE 0 END) AS completed,
		       COUNT(a.id) AS total
		FROM assignments a
		JOIN leaders l ON a.leader_id = l.id
		WHERE a.project_id = $1
		GROUP BY l.id, l.name, a.relation
		ORDER BY l.name
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary []*models.LeaderSummary
	for rows.Next() {
		ls := &models.LeaderSummary{}
		if err := rows.Scan(&ls.LeaderName, &ls.Relation, &ls.Completed, &ls.Total); err != nil {
			return nil, err
		}
		summary = append(summary, ls)
	}
	return summary, rows.Err()
}
