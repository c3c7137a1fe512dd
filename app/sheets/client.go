package sheets

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

var spreadsheetURLPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// Client wraps the Google Sheets API behind the narrow surface the sync
// engine consumes.
type Client struct {
	srv *gsheets.Service
}

// NewClient builds a Sheets client from a service account credentials file.
// A missing file is reported before any network call so the caller can
// treat it as a run-level precondition failure.
func NewClient(ctx context.Context, credentialsPath string) (*Client, error) {
	if _, err := os.Stat(credentialsPath); err != nil {
		return nil, fmt.Errorf("service account file not found: %s", credentialsPath)
	}

	srv, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{srv: srv}, nil
}

// Open resolves a spreadsheet URL to its first worksheet.
func (c *Client) Open(url string) (*Worksheet, error) {
	id, err := ExtractSpreadsheetID(url)
	if err != nil {
		return nil, err
	}

	meta, err := c.srv.Spreadsheets.Get(id).Fields(
		"sheets(properties(sheetId,title,gridProperties(rowCount,columnCount)))",
	).Do()
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	if len(meta.Sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no worksheets", id)
	}

	props := meta.Sheets[0].Properties
	ws := &Worksheet{
		srv:           c.srv,
		spreadsheetID: id,
		sheetID:       props.SheetId,
		title:         props.Title,
	}
	if props.GridProperties != nil {
		ws.rowCount = props.GridProperties.RowCount
		ws.colCount = props.GridProperties.ColumnCount
	}
	return ws, nil
}

// ExtractSpreadsheetID pulls the document ID out of a sheet URL.
func ExtractSpreadsheetID(url string) (string, error) {
	m := spreadsheetURLPattern.FindStringSubmatch(url)
	if m == nil {
		return "", fmt.Errorf("not a valid spreadsheet URL: %s", url)
	}
	return m[1], nil
}

// Worksheet is one tab of a spreadsheet. Rows and columns are 1-based to
// match the sheet's visual coordinates.
type Worksheet struct {
	srv           *gsheets.Service
	spreadsheetID string
	sheetID       int64
	title         string
	rowCount      int64
	colCount      int64
}

func (w *Worksheet) Title() string { return w.title }

// ReadAll fetches the full grid of cell text, header row first. Cells are
// returned exactly as displayed; trailing empty cells may be absent.
func (w *Worksheet) ReadAll() ([][]string, error) {
	resp, err := w.srv.Spreadsheets.Values.Get(w.spreadsheetID, w.title).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet values: %w", err)
	}

	grid := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// UpdateCell writes a single cell at the 1-based row/column position.
func (w *Worksheet) UpdateCell(row, col int, value string) error {
	rng := fmt.Sprintf("%s!%s%d", w.title, ColumnLetter(col), row)
	_, err := w.srv.Spreadsheets.Values.Update(w.spreadsheetID, rng, &gsheets.ValueRange{
		Values: [][]interface{}{{value}},
	}).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("update cell %s: %w", rng, err)
	}
	return nil
}

// UpdateRow rewrites a full row starting at column A.
func (w *Worksheet) UpdateRow(row int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	rng := fmt.Sprintf("%s!A%d", w.title, row)
	_, err := w.srv.Spreadsheets.Values.Update(w.spreadsheetID, rng, &gsheets.ValueRange{
		Values: [][]interface{}{cells},
	}).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("update row %d: %w", row, err)
	}
	return nil
}

// Resize grows the worksheet grid. Shrinking is never requested by the
// engine, so smaller values are ignored.
func (w *Worksheet) Resize(rows, cols int) error {
	newRows := w.rowCount
	newCols := w.colCount
	if int64(rows) > newRows {
		newRows = int64(rows)
	}
	if int64(cols) > newCols {
		newCols = int64(cols)
	}
	if newRows == w.rowCount && newCols == w.colCount {
		return nil
	}

	_, err := w.srv.Spreadsheets.BatchUpdate(w.spreadsheetID, &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			UpdateSheetProperties: &gsheets.UpdateSheetPropertiesRequest{
				Properties: &gsheets.SheetProperties{
					SheetId: w.sheetID,
					GridProperties: &gsheets.GridProperties{
						RowCount:    newRows,
						ColumnCount: newCols,
					},
				},
				Fields: "gridProperties(rowCount,columnCount)",
			},
		}},
	}).Do()
	if err != nil {
		return fmt.Errorf("resize sheet: %w", err)
	}
	w.rowCount = newRows
	w.colCount = newCols
	return nil
}

// ColumnLetter converts a 1-based column index to its A1 letter form.
func ColumnLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}
