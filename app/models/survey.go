package models

// SurveySource is one configured external sheet to pull responses from.
// It is persisted as an entry in the forms config file, identified by
// its SheetURL for update purposes.
type SurveySource struct {
	Client     string `json:"client"`
	Course     string `json:"course"`
	Manager    string `json:"manager"`
	Date       string `json:"date"` // YYYY-MM-DD
	Category   string `json:"category"`
	SurveyName string `json:"survey_name"`
	SheetURL   string `json:"sheet_url"`
}

// SurveyInfo is the persisted identity record for a survey. The six
// identifying fields are unique together; re-registering the same tuple
// resolves to the same ID.
type SurveyInfo struct {
	ID         int64  `json:"id"`
	ClientName string `json:"client_name"`
	CourseName string `json:"course_name"`
	Manager    string `json:"manager"`
	Date       string `json:"date"`
	Category   string `json:"category"`
	SurveyName string `json:"survey_name"`
}

// Question is a deduplicated question bank entry. Text is unique across
// the catalog: the same column header in different sheets maps to one ID.
type Question struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Text     string `json:"question_text"`
	Keyword  string `json:"keyword,omitempty"`
}

// SurveyResponse is one normalized answer cell pulled from a sheet.
type SurveyResponse struct {
	ID           int64  `json:"id"`
	SurveyID     int64  `json:"survey_id"`
	RespondentID string `json:"respondent_id"`
	QuestionID   int64  `json:"question_id"`
	AnswerValue  string `json:"answer_value"`
}

// Answer pairs a resolved question with the raw cell value for one row.
type Answer struct {
	QuestionID int64
	Value      string
}

// SyncResult is the per-source outcome of a sync run.
type SyncResult struct {
	SurveyName string `json:"survey_name"`
	SyncedRows int    `json:"synced_rows"`
	Error      string `json:"error,omitempty"`
}

// SyncSummary is what a full sync run returns to the caller.
type SyncSummary struct {
	Message string       `json:"message"`
	Results []SyncResult `json:"results"`
}
