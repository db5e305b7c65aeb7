package google

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// SheetsSink writes tabular rows through the Sheets API. It implements both
// the pipeline's tabular sink and the campaign creator's sheet service.
type SheetsSink struct {
	svc *sheets.Service
}

func NewSheetsSink(svc *sheets.Service) *SheetsSink {
	return &SheetsSink{svc: svc}
}

// CreateSpreadsheet creates a new spreadsheet and returns its id and URL.
func (s *SheetsSink) CreateSpreadsheet(ctx context.Context, title string) (string, string, error) {
	ss, err := s.svc.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}
	return ss.SpreadsheetId, ss.SpreadsheetUrl, nil
}

// EnsureTab adds the named tab when missing and reports whether it was
// created.
func (s *SheetsSink) EnsureTab(ctx context.Context, sheetID, title string) (bool, error) {
	ss, err := s.svc.Spreadsheets.Get(sheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("failed to inspect spreadsheet %s: %w", sheetID, err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return false, nil
		}
	}

	_, err = s.svc.Spreadsheets.BatchUpdate(sheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("failed to add tab %q: %w", title, err)
	}
	return true, nil
}

// AppendRows appends rows after the tab's existing content.
func (s *SheetsSink) AppendRows(ctx context.Context, sheetID, tab string, rows [][]any) error {
	_, err := s.svc.Spreadsheets.Values.Append(sheetID, tab+"!A1", &sheets.ValueRange{
		Values: rows,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append rows to %q: %w", tab, err)
	}
	return nil
}

// ReplaceRows clears the tab and rewrites it from the first cell.
func (s *SheetsSink) ReplaceRows(ctx context.Context, sheetID, tab string, rows [][]any) error {
	_, err := s.svc.Spreadsheets.Values.Clear(sheetID, tab, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear tab %q: %w", tab, err)
	}

	_, err = s.svc.Spreadsheets.Values.Update(sheetID, tab+"!A1", &sheets.ValueRange{
		Values: rows,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to rewrite tab %q: %w", tab, err)
	}
	return nil
}
