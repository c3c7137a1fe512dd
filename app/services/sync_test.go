package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/qkrtlwls123-a11y/leadership-360/app/models"
)

// fakeSheet is an in-memory worksheet. Cell writes mutate the grid so a
// second engine run observes the markers the first one wrote.
type fakeSheet struct {
	grid        [][]string
	resizeCalls int
	failRead    bool
	failWrites  bool
	cellWrites  int
}

func (f *fakeSheet) ReadAll() ([][]string, error) {
	if f.failRead {
		return nil, errors.New("read denied")
	}
	out := make([][]string, len(f.grid))
	for i, r := range f.grid {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (f *fakeSheet) UpdateCell(row, col int, value string) error {
	if f.failWrites {
		return errors.New("cell write failed")
	}
	for len(f.grid) < row {
		f.grid = append(f.grid, nil)
	}
	r := f.grid[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	f.grid[row-1] = r
	f.cellWrites++
	return nil
}

func (f *fakeSheet) UpdateRow(row int, values []string) error {
	if f.failWrites {
		return errors.New("row write failed")
	}
	for len(f.grid) < row {
		f.grid = append(f.grid, nil)
	}
	f.grid[row-1] = append([]string(nil), values...)
	return nil
}

func (f *fakeSheet) Resize(rows, cols int) error {
	f.resizeCalls++
	return nil
}

// fakeStore mimics the upsert semantics of the real store.
type fakeStore struct {
	questions    map[string]int64
	questionCats map[string]string
	surveys      map[string]int64
	responses    map[string][]models.Answer
	insertErrs   map[string]error
	nextQuestion int64
	nextSurvey   int64
	inserts      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		questions:    make(map[string]int64),
		questionCats: make(map[string]string),
		surveys:      make(map[string]int64),
		responses:    make(map[string][]models.Answer),
		insertErrs:   make(map[string]error),
	}
}

func respKey(surveyID int64, respondentID string) string {
	return fmt.Sprintf("%d/%s", surveyID, respondentID)
}

func (s *fakeStore) GetOrCreateQuestion(category, text string) (int64, error) {
	if id, ok := s.questions[text]; ok {
		return id, nil
	}
	s.nextQuestion++
	s.questions[text] = s.nextQuestion
	s.questionCats[text] = category
	return s.nextQuestion, nil
}

func (s *fakeStore) UpsertSurveyInfo(src models.SurveySource) (int64, error) {
	key := strings.Join([]string{src.Client, src.Course, src.Manager, src.Date, src.Category, src.SurveyName}, "|")
	if id, ok := s.surveys[key]; ok {
		return id, nil
	}
	s.nextSurvey++
	s.surveys[key] = s.nextSurvey
	return s.nextSurvey, nil
}

func (s *fakeStore) HasResponses(surveyID int64, respondentID string) (bool, error) {
	_, ok := s.responses[respKey(surveyID, respondentID)]
	return ok, nil
}

func (s *fakeStore) InsertResponses(surveyID int64, respondentID string, answers []models.Answer) error {
	if err := s.insertErrs[respondentID]; err != nil {
		return err
	}
	s.responses[respKey(surveyID, respondentID)] = answers
	s.inserts++
	return nil
}

type fakeOpener struct {
	sheets map[string]Sheet
}

func (o *fakeOpener) open(url string) (Sheet, error) {
	sh, ok := o.sheets[url]
	if !ok {
		return nil, errors.New("permission denied")
	}
	return sh, nil
}

func validSource(name, url string) models.SurveySource {
	return models.SurveySource{
		Client:     "Acme",
		Course:     "Lead101",
		Manager:    "Kim",
		Date:       "2025-01-10",
		Category:   "Leadership",
		SurveyName: name,
		SheetURL:   url,
	}
}

func newEngine(store *fakeStore, sheets map[string]Sheet) *Engine {
	opener := &fakeOpener{sheets: sheets}
	return NewEngine(store, opener.open)
}

func TestSyncSingleSheet(t *testing.T) {
	sheet := &fakeSheet{grid: [][]string{
		{"Name", "Q1", "Q2"},
		{"Respondent1", "4", "5"},
	}}
	store := newFakeStore()
	engine := newEngine(store, map[string]Sheet{"https://sheets/1": sheet})

	summary := engine.SyncAll([]models.SurveySource{validSource("Q1 360", "https://sheets/1")})

	if summary.Message != "Sync completed" {
		t.Errorf("message = %q", summary.Message)
	}
	if len(summary.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(summary.Results))
	}
	res := summary.Results[0]
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.SyncedRows != 1 {
		t.Errorf("synced_rows = %d, want 1", res.SyncedRows)
	}

	// One survey identity for the tuple
	if len(store.surveys) != 1 {
		t.Errorf("surveys = %d, want 1", len(store.surveys))
	}

	// Every non-empty header except the marker becomes a catalog entry
	if len(store.questions) != 3 {
		t.Errorf("questions = %d, want 3", len(store.questions))
	}
	if store.questionCats["Q1"] != "Leadership" {
		t.Errorf("Q1 category = %q", store.questionCats["Q1"])
	}

	// respondent_id is derived from survey id and the sheet row number
	answers, ok := store.responses[respKey(1, "1_2")]
	if !ok {
		t.Fatal("no responses stored for respondent 1_2")
	}
	if len(answers) != 3 {
		t.Errorf("answers = %d, want 3", len(answers))
	}

	// Header row gained the marker column and row 2 was marked
	if got := sheet.grid[0][len(sheet.grid[0])-1]; got != MarkerHeader {
		t.Errorf("last header = %q, want %q", got, MarkerHeader)
	}
	if got := sheet.grid[1][3]; got != "Y" {
		t.Errorf("row 2 marker = %q, want Y", got)
	}
	if sheet.resizeCalls == 0 {
		t.Error("expected the sheet to be resized for the marker column")
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	sheet := &fakeSheet{grid: [][]string{
		{"Q1", "Q2"},
		{"4", "5"},
		{"3", "2"},
	}}
	store := newFakeStore()
	engine := newEngine(store, map[string]Sheet{"https://sheets/1": sheet})
	src := validSource("Repeat", "https://sheets/1")

	first := engine.SyncAll([]models.SurveySource{src})
	if first.Results[0].SyncedRows != 2 {
		t.Fatalf("first run synced %d rows, want 2", first.Results[0].SyncedRows)
	}

	second := engine.SyncAll([]models.SurveySource{src})
	if second.Results[0].SyncedRows != 0 {
		t.Errorf("second run synced %d rows, want 0", second.Results[0].SyncedRows)
	}
	if store.inserts != 2 {
		t.Errorf("total inserts = %d, want 2", store.inserts)
	}
	if len(store.surveys) != 1 {
		t.Errorf("surveys = %d, want 1", len(store.surveys))
	}
}

func TestMarkedRowsAreSkipped(t *testing.T) {
	tokens := []string{"Y", "yes", "TRUE", "1", "Synced", " y "}
	grid := [][]string{{"Q1", "Synced"}}
	for _, tok := range tokens {
		grid = append(grid, []string{"5", tok})
	}
	grid = append(grid, []string{"4", ""})

	sheet := &fakeSheet{grid: grid}
	store := newFakeStore()
	engine := newEngine(store, map[string]Sheet{"https://sheets/1": sheet})

	res := engine.SyncAll([]models.SurveySource{validSource("Tokens", "https://sheets/1")}).Results[0]
	if res.SyncedRows != 1 {
		t.Errorf("synced_rows = %d, want 1 (only the unmarked row)", res.SyncedRows)
	}
	if store.inserts != 1 {
		t.Errorf("inserts = %d, want 1", store.inserts)
	}
}

func TestShortRowsArePadded(t *testing.T) {
	sheet := &fakeSheet{grid: [][]string{
		{"Q1", "Q2", "Q3"},
		{"4"}, // missing trailing cells
	}}
	store := newFakeStore()
	engine := newEngine(store, map[string]Sheet{"https://sheets/1": sheet})

	res := engine.SyncAll([]models.SurveySource{validSource("Short", "https://sheets/1")}).Results[0]
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.SyncedRows != 1 {
		t.Fatalf("synced_rows = %d, want 1", res.SyncedRows)
	}

	// Only the one non-empty cell is stored
	answers := store.responses[respKey(1, "1_2")]
	if len(answers) != 1 {
		t.Errorf("answers = %d, want 1", len(answers))
	}
	if answers[0].Value != "4" {
		t.Errorf("answer = %q, want 4", answers[0].Value)
	}
}

func TestExistingMarkerColumnIsReused(t *testing.T) {
	sheet := &fakeSheet{grid: [][]string{
		{"Q1", "sYnCeD"},
		{"5", ""},
	}}
	store := newFakeStore()
	engine := newEngine(store, map[string]Sheet{"https://sheets/1": sheet})

	res := engine.SyncAll([]models.SurveySource{validSource("Reuse", "https://sheets/1")}).Results[0]
	if res.SyncedRows != 1 {
		t.Fatalf("synced_rows = %d, want 1", res.SyncedRows)
	}
	if sheet.resizeCalls != 0 {
		t.Error("sheet should not be resized when the marker column exists")
	}
	if len(sheet.grid[0]) != 2 {
		t.Errorf("header count = %d, want 2", len(sheet.grid[0]))
	}
	// The casing found in the sheet survives; only the position matters
	if sheet.grid[1][1] != "Y" {
		t.Errorf("row 2 marker = %q, want Y", sheet.grid[1][1])
	}
}

func TestDuplicateHeadersCollapse(t *testing.T) {
	sheet := &fakeSheet{grid: [][]string{
		{"Q1", "Q1", "Q2"},
		{"4", "5", "3"},
	}}
	store := newFakeStore()
	engine := newEngine(store, map[string]Sheet{"https://sheets/1": sheet})

	res := engine.SyncAll([]models.SurveySource{validSource("Dup", "https://sheets/1")}).Results[0]
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if len(store.questions) != 2 {
		t.Errorf("questions = %d, want 2", len(store.questions))
	}
	// One answer per question id, so the duplicate column cannot violate
	// the (survey, respondent, question) uniqueness
	answers := store.responses[respKey(1, "1_2")]
	if len(answers) != 2 {
		t.Errorf("answers = %d, want 2", len(answers))
	}
}

func TestEmptyHeadersAreSkipped(t *testing.T) {
	sheet := &fakeSheet{grid: [][]string{
		{"Q1", "  ", "Q2"},
		{"4", "ignored", "5"},
	}}
	store := newFakeStore()
	engine := newEngine(store, map[string]Sheet{"https://sheets/1": sheet})

	engine.SyncAll([]models.SurveySource{validSource("Blank", "https://sheets/1")})
	if len(store.questions) != 2 {
		t.Errorf("questions = %d, want 2", len(store.questions))
	}
	answers := store.responses[respKey(1, "1_2")]
	if len(answers) != 2 {
		t.Errorf("answers = %d, want 2 (unlabeled column dropped)", len(answers))
	}
}

func TestEmptySheetReportsZero(t *testing.T) {
	sheet := &fakeSheet{}
	store := newFakeStore()
	engine := newEngine(store, map[string]Sheet{"https://sheets/1": sheet})

	res := engine.SyncAll([]models.SurveySource{validSource("Empty", "https://sheets/1")}).Results[0]
	if res.Error != "" || res.SyncedRows != 0 {
		t.Errorf("result = %+v, want zero rows and no error", res)
	}
	if len(store.surveys) != 0 {
		t.Error("no survey identity should be created for an empty sheet")
	}
}

func TestSourceFailureDoesNotAbortRun(t *testing.T) {
	good := &fakeSheet{grid: [][]string{
		{"Q1"},
		{"5"},
	}}
	store := newFakeStore()
	engine := newEngine(store, map[string]Sheet{"https://sheets/good": good})

	summary := engine.SyncAll([]models.SurveySource{
		validSource("Broken", "https://sheets/missing"),
		validSource("Fine", "https://sheets/good"),
	})

	if len(summary.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(summary.Results))
	}
	if summary.Results[0].Error == "" {
		t.Error("expected an error entry for the unreachable source")
	}
	if summary.Results[0].SyncedRows != 0 {
		t.Errorf("broken source synced %d rows", summary.Results[0].SyncedRows)
	}
	if summary.Results[1].Error != "" || summary.Results[1].SyncedRows != 1 {
		t.Errorf("good source result = %+v", summary.Results[1])
	}
}

func TestReadFailureIsPerSource(t *testing.T) {
	sheet := &fakeSheet{failRead: true}
	store := newFakeStore()
	engine := newEngine(store, map[string]Sheet{"https://sheets/1": sheet})

	res := engine.SyncAll([]models.SurveySource{validSource("NoRead", "https://sheets/1")}).Results[0]
	if res.Error == "" {
		t.Error("expected a per-source error for the unreadable sheet")
	}
}

func TestInvalidDateFailsSource(t *testing.T) {
	store := newFakeStore()
	engine := newEngine(store, map[string]Sheet{})

	src := validSource("BadDate", "https://sheets/1")
	src.Date = "10-01-2025"
	res := engine.SyncAll([]models.SurveySource{src}).Results[0]

	if res.Error == "" {
		t.Fatal("expected a configuration error")
	}
	if !strings.Contains(res.Error, "BadDate") {
		t.Errorf("error should name the survey: %s", res.Error)
	}
	if len(store.surveys) != 0 {
		t.Error("no survey identity should be created for a bad date")
	}
}

func TestRowCommitFailureLeavesRowUnmarked(t *testing.T) {
	sheet := &fakeSheet{grid: [][]string{
		{"Q1", "Synced"},
		{"4", ""},
		{"5", ""},
	}}
	store := newFakeStore()
	store.insertErrs["1_2"] = errors.New("deadlock detected")
	engine := newEngine(store, map[string]Sheet{"https://sheets/1": sheet})
	src := validSource("Fail", "https://sheets/1")

	res := engine.SyncAll([]models.SurveySource{src}).Results[0]
	if res.Error != "" {
		t.Fatalf("row failure must not fail the source: %s", res.Error)
	}
	if res.SyncedRows != 1 {
		t.Errorf("synced_rows = %d, want 1", res.SyncedRows)
	}
	if sheet.grid[1][1] != "" {
		t.Errorf("failed row marker = %q, want empty", sheet.grid[1][1])
	}
	if sheet.grid[2][1] != "Y" {
		t.Errorf("good row marker = %q, want Y", sheet.grid[2][1])
	}

	// The failed row is retried on the next run
	delete(store.insertErrs, "1_2")
	res = engine.SyncAll([]models.SurveySource{src}).Results[0]
	if res.SyncedRows != 1 {
		t.Errorf("retry synced %d rows, want 1", res.SyncedRows)
	}
	if sheet.grid[1][1] != "Y" {
		t.Errorf("retried row marker = %q, want Y", sheet.grid[1][1])
	}
}

func TestReconcilesRowsInsertedButUnmarked(t *testing.T) {
	// Simulates a prior run that committed row 2 and crashed before the
	// marker write-back.
	sheet := &fakeSheet{grid: [][]string{
		{"Q1", "Synced"},
		{"4", ""},
	}}
	store := newFakeStore()
	src := validSource("Crash", "https://sheets/1")

	surveyID, _ := store.UpsertSurveyInfo(src)
	store.responses[respKey(surveyID, "1_2")] = []models.Answer{{QuestionID: 1, Value: "4"}}

	engine := newEngine(store, map[string]Sheet{"https://sheets/1": sheet})
	res := engine.SyncAll([]models.SurveySource{src}).Results[0]

	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.SyncedRows != 0 {
		t.Errorf("synced_rows = %d, want 0 (row only reconciled)", res.SyncedRows)
	}
	if store.inserts != 0 {
		t.Errorf("inserts = %d, want 0", store.inserts)
	}
	if sheet.grid[1][1] != "Y" {
		t.Errorf("marker = %q, want Y", sheet.grid[1][1])
	}
}

func TestNoSourcesConfigured(t *testing.T) {
	engine := newEngine(newFakeStore(), map[string]Sheet{})

	summary := engine.SyncAll(nil)
	if summary.Message != "No surveys configured." {
		t.Errorf("message = %q", summary.Message)
	}
	if len(summary.Results) != 0 {
		t.Errorf("results = %d, want 0", len(summary.Results))
	}
}

func TestMarkerWriteFailureKeepsGoing(t *testing.T) {
	sheet := &fakeSheet{grid: [][]string{
		{"Q1", "Synced"},
		{"4", ""},
	}}
	store := newFakeStore()
	engine := newEngine(store, map[string]Sheet{"https://sheets/1": sheet})
	src := validSource("NoMark", "https://sheets/1")

	// First run inserts but cannot write the marker back
	sheet.failWrites = true
	res := engine.SyncAll([]models.SurveySource{src}).Results[0]
	if res.SyncedRows != 1 {
		t.Fatalf("synced_rows = %d, want 1", res.SyncedRows)
	}

	// Next run reconciles via the stored responses instead of duplicating
	sheet.failWrites = false
	res = engine.SyncAll([]models.SurveySource{src}).Results[0]
	if res.SyncedRows != 0 {
		t.Errorf("second run synced %d rows, want 0", res.SyncedRows)
	}
	if store.inserts != 1 {
		t.Errorf("inserts = %d, want 1", store.inserts)
	}
	if sheet.grid[1][1] != "Y" {
		t.Errorf("marker = %q, want Y after reconciliation", sheet.grid[1][1])
	}
}
