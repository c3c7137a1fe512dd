package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/qkrtlwls123-a11y/leadership-360/app/config"
	"github.com/qkrtlwls123-a11y/leadership-360/app/database"
	"github.com/qkrtlwls123-a11y/leadership-360/app/models"
	"github.com/qkrtlwls123-a11y/leadership-360/app/sheets"
)

// MarkerHeader is the reserved trailing column recording per-row sync state.
const MarkerHeader = "Synced"

// markerValue is what gets written into a processed row's marker cell.
const markerValue = "Y"

// syncedTokens are the marker values treated as "already synced",
// compared trimmed and lowercased.
var syncedTokens = map[string]bool{
	"y":      true,
	"yes":    true,
	"true":   true,
	"1":      true,
	"synced": true,
}

// Sheet is the worksheet surface the engine drives. Rows and columns are
// 1-based, matching the sheet's visual coordinates.
type Sheet interface {
	ReadAll() ([][]string, error)
	UpdateCell(row, col int, value string) error
	UpdateRow(row int, values []string) error
	Resize(rows, cols int) error
}

// OpenSheetFunc resolves a sheet URL to its first worksheet.
type OpenSheetFunc func(url string) (Sheet, error)

// SyncStore is the storage surface the engine drives. All identity
// resolution is upsert-based and idempotent.
type SyncStore interface {
	GetOrCreateQuestion(category, text string) (int64, error)
	UpsertSurveyInfo(src models.SurveySource) (int64, error)
	HasResponses(surveyID int64, respondentID string) (bool, error)
	InsertResponses(surveyID int64, respondentID string, answers []models.Answer) error
}

// Engine pulls externally collected sheet responses into the normalized
// schema, one source at a time, one row at a time. Each data row is one
// transaction: the blast radius of a mid-sync failure is a single row.
type Engine struct {
	store SyncStore
	open  OpenSheetFunc
}

func NewEngine(store SyncStore, open OpenSheetFunc) *Engine {
	return &Engine{store: store, open: open}
}

// SyncAll processes every configured source. A source failure is recorded
// in its result entry; the remaining sources are still attempted.
func (e *Engine) SyncAll(sources []models.SurveySource) *models.SyncSummary {
	if len(sources) == 0 {
		return &models.SyncSummary{Message: "No surveys configured.", Results: []models.SyncResult{}}
	}

	results := make([]models.SyncResult, 0, len(sources))
	for _, src := range sources {
		results = append(results, e.syncSource(src))
	}
	return &models.SyncSummary{Message: "Sync completed", Results: results}
}

// syncSource runs the per-source algorithm: open sheet, ensure the marker
// column, resolve survey and question identities, then ingest unmarked rows.
func (e *Engine) syncSource(src models.SurveySource) models.SyncResult {
	result := models.SyncResult{SurveyName: src.SurveyName}

	// The date gates everything else: a bad config entry should fail
	// before touching the sheet or the database.
	if _, err := time.Parse(DateLayout, src.Date); err != nil {
		cfgErr := &ConfigurationError{Msg: fmt.Sprintf("invalid date format for %s", src.SurveyName)}
		result.Error = cfgErr.Error()
		return result
	}

	sheet, err := e.open(src.SheetURL)
	if err != nil {
		result.Error = (&SourceAccessError{URL: src.SheetURL, Err: err}).Error()
		return result
	}

	grid, err := sheet.ReadAll()
	if err != nil {
		result.Error = (&SourceAccessError{URL: src.SheetURL, Err: err}).Error()
		return result
	}
	if len(grid) == 0 {
		return result
	}

	headers, markerCol, err := ensureMarkerColumn(sheet, grid[0], len(grid))
	if err != nil {
		result.Error = (&SourceAccessError{URL: src.SheetURL, Err: err}).Error()
		return result
	}

	surveyID, err := e.store.UpsertSurveyInfo(src)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	// Column position -> question id. Scoped to this run; duplicate labels
	// across columns collapse to one id via the byText cache.
	colQuestion := make(map[int]int64, len(headers))
	byText := make(map[string]int64, len(headers))
	for idx, label := range headers {
		if idx == markerCol-1 {
			continue
		}
		text := strings.TrimSpace(label)
		if text == "" {
			continue
		}
		qID, ok := byText[text]
		if !ok {
			qID, err = e.store.GetOrCreateQuestion(src.Category, text)
			if err != nil {
				result.Error = err.Error()
				return result
			}
			byText[text] = qID
		}
		colQuestion[idx] = qID
	}

	for i, row := range grid[1:] {
		rowNum := i + 2 // 1-based sheet row, header is row 1

		// Short rows read as empty strings for the missing trailing cells.
		for len(row) < len(headers) {
			row = append(row, "")
		}

		if syncedTokens[strings.ToLower(strings.TrimSpace(row[markerCol-1]))] {
			continue
		}

		respondentID := fmt.Sprintf("%d_%d", surveyID, rowNum)

		exists, err := e.store.HasResponses(surveyID, respondentID)
		if err != nil {
			result.Error = err.Error()
			return result
		}

		if exists {
			// A prior run stored this row but never marked it. Trust the
			// database over the sheet: write the marker, insert nothing.
			if err := sheet.UpdateCell(rowNum, markerCol, markerValue); err != nil {
				log.Printf("Warning: marker write failed for %s row %d: %v", src.SurveyName, rowNum, err)
			}
			continue
		}

		var answers []models.Answer
		seen := make(map[int64]bool)
		for idx := range headers {
			qID, ok := colQuestion[idx]
			if !ok || seen[qID] || strings.TrimSpace(row[idx]) == "" {
				continue
			}
			seen[qID] = true
			answers = append(answers, models.Answer{QuestionID: qID, Value: row[idx]})
		}

		if err := e.store.InsertResponses(surveyID, respondentID, answers); err != nil {
			// Row is rolled back and left unmarked; the next run retries it.
			storageErr := &StorageError{RespondentID: respondentID, Err: err}
			log.Printf("Warning: %s: %v", src.SurveyName, storageErr)
			continue
		}

		result.SyncedRows++
		if err := sheet.UpdateCell(rowNum, markerCol, markerValue); err != nil {
			// The inserted responses reconcile this row on the next run.
			log.Printf("Warning: marker write failed for %s row %d: %v", src.SurveyName, rowNum, err)
		}
	}

	return result
}

// ensureMarkerColumn makes sure the header row ends with the marker column
// and returns the final headers plus the marker's 1-based column index.
// The header write happens before any data row is processed, so a crash
// mid-run still leaves the column in place.
func ensureMarkerColumn(sheet Sheet, headers []string, rowCount int) ([]string, int, error) {
	if n := len(headers); n > 0 && strings.EqualFold(strings.TrimSpace(headers[n-1]), MarkerHeader) {
		return headers, n, nil
	}

	headers = append(headers, MarkerHeader)
	if err := sheet.Resize(rowCount, len(headers)); err != nil {
		return nil, 0, err
	}
	if err := sheet.UpdateRow(1, headers); err != nil {
		return nil, 0, err
	}
	return headers, len(headers), nil
}

// RunSync is the run-level entry point: it loads the configured sources,
// builds the Sheets client, and syncs everything against the given pool.
// Only run preconditions (unreachable config, missing credentials) return
// an error; per-source failures land in the summary.
func RunSync(ctx context.Context, cfg *config.Config, db *sql.DB) (*models.SyncSummary, error) {
	store := NewConfigStore(cfg.FormsConfigPath)
	sources, err := store.Load()
	if err != nil {
		return nil, &RunPreconditionError{Err: err}
	}
	if len(sources) == 0 {
		return &models.SyncSummary{Message: "No surveys configured.", Results: []models.SyncResult{}}, nil
	}

	client, err := sheets.NewClient(ctx, cfg.ServiceAccountPath)
	if err != nil {
		return nil, &RunPreconditionError{Err: err}
	}

	engine := NewEngine(database.NewStore(db), func(url string) (Sheet, error) {
		return client.Open(url)
	})
	return engine.SyncAll(sources), nil
}
