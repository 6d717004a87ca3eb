package googlesheets

import (
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/voycel/Asset-Tracker-sub000/internal/assets"
	"github.com/voycel/Asset-Tracker-sub000/internal/export"
)

// SheetPushService mirrors a filtered asset export into a spreadsheet range.
// The target range is cleared first so removed assets do not linger.
type SheetPushService struct {
	sheetsService *sheets.Service
	exporter      *export.ExportService
}

func NewSheetPushService(sheetsService *sheets.Service, exporter *export.ExportService) *SheetPushService {
	return &SheetPushService{
		sheetsService: sheetsService,
		exporter:      exporter,
	}
}

type PushResult struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	Range         string `json:"range"`
	RowsWritten   int    `json:"rows_written"`
}

func (s *SheetPushService) PushAssets(spreadsheetID, sheetName string, filter assets.AssetFilter) (*PushResult, error) {
	table, err := s.exporter.BuildTable(filter)
	if err != nil {
		return nil, err
	}

	values := make([][]interface{}, 0, len(table.Rows)+1)
	values = append(values, toInterfaceRow(table.Header))
	for _, row := range table.Rows {
		values = append(values, toInterfaceRow(row))
	}

	writeRange := sheetName
	if writeRange == "" {
		writeRange = "Sheet1"
	}

	_, err = s.sheetsService.Spreadsheets.Values.Clear(spreadsheetID, writeRange, &sheets.ClearValuesRequest{}).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to clear sheet range %s: %w", writeRange, err)
	}

	body := &sheets.ValueRange{Values: values}
	_, err = s.sheetsService.Spreadsheets.Values.
		Update(spreadsheetID, writeRange, body).
		ValueInputOption("RAW").
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to write to sheet: %w", err)
	}

	return &PushResult{
		SpreadsheetID: spreadsheetID,
		Range:         writeRange,
		RowsWritten:   len(table.Rows),
	}, nil
}

func toInterfaceRow(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, cell := range row {
		cells[i] = cell
	}
	return cells
}
