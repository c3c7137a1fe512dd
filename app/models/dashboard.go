package models

// ProjectProgress aggregates assignment completion for one project.
type ProjectProgress struct {
	Corporate   string  `json:"corporate"`
	ProjectID   int64   `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Year        int     `json:"year"`
	Total       int     `json:"total"`
	Done        int     `json:"done"`
	ProgressPct float64 `json:"progress_pct"`
}

// LeaderSummary aggregates completion per leader and relation.
type LeaderSummary struct {
	LeaderName string `json:"leader_name"`
	Relation   string `json:"relation"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
}

// DashboardStats is the top-level summary for the admin dashboard.
type DashboardStats struct {
	TotalCorporates int `json:"total_corporates"`
	TotalProjects   int `json:"total_projects"`
	TotalLeaders    int `json:"total_leaders"`
	TotalEvaluators int `json:"total_evaluators"`
	TotalResponses  int `json:"total_responses"`
	SyncedResponses int `json:"synced_responses"`
}
