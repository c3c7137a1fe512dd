package models

import "time"

// Corporate is a client company (tenant) running 360-degree assessments.
type Corporate struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Project is one assessment campaign for a corporate.
type Project struct {
	ID            int64     `json:"id"`
	CorporateID   int64     `json:"corporate_id"`
	Name          string    `json:"name"`
	Year          int       `json:"year"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	CorporateName string    `json:"corporate_name,omitempty"`
}

// Leader is a person being assessed within a project.
type Leader struct {
	ID         int64  `json:"id"`
	ProjectID  int64  `json:"project_id"`
	Name       string `json:"name"`
	LeaderCode string `json:"leader_code,omitempty"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email,omitempty"`
}

// Evaluator is a rater with a tokenized access link.
type Evaluator struct {
	ID            int64  `json:"id"`
	ProjectID     int64  `json:"project_id"`
	Name          string `json:"name"`
	EvaluatorCode string `json:"evaluator_code,omitempty"`
	Email         string `json:"email"`
	AccessToken   string `json:"access_token,omitempty"`
	IsActive      bool   `json:"is_active"`
}

// Assignment links an evaluator to a leader they rate.
type Assignment struct {
	ID           int64      `json:"id"`
	ProjectID    int64      `json:"project_id"`
	EvaluatorID  int64      `json:"evaluator_id"`
	LeaderID     int64      `json:"leader_id"`
	Relation     string     `json:"relation"`
	ProjectGroup string     `json:"project_group,omitempty"`
	Status       string     `json:"status"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	LeaderName   string     `json:"leader_name,omitempty"`
	Position     string     `json:"position,omitempty"`
	Department   string     `json:"department,omitempty"`
}

// RosterRow is one line of a bulk roster upload.
type RosterRow struct {
	EvaluatorName  string `json:"evaluator_name"`
	EvaluatorEmail string `json:"evaluator_email"`
	EvaluatorCode  string `json:"evaluator_code,omitempty"`
	LeaderName     string `json:"leader_name"`
	LeaderCode     string `json:"leader_code,omitempty"`
	LeaderPosition string `json:"leader_position,omitempty"`
	ProjectGroup   string `json:"project_group,omitempty"`
	Relation       string `json:"relation"`
}

// AssessmentResponse is a submitted rating for one assignment.
type AssessmentResponse struct {
	ID            int64     `json:"id"`
	AssignmentID  int64     `json:"assignment_id"`
	Q1Score       int       `json:"q1_score"`
	Q2Score       int       `json:"q2_score"`
	QScore        float64   `json:"q_score"`
	Comment       string    `json:"comment,omitempty"`
	SubmittedAt   time.Time `json:"submitted_at"`
	LeaderName    string    `json:"leader_name,omitempty"`
	EvaluatorName string    `json:"evaluator_name,omitempty"`
	Relation      string    `json:"relation,omitempty"`
}
