package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/titledesk/title-review/internal/entity"
)

// Service produces XLSX bytes for a reviewed extraction result.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportXLSX returns an XLSX workbook (as bytes) with one sheet per vehicle:
// columns [Field Name, Extracted Value, Confidence, Status, Page], sheet
// named Vehicle_{index}_VIN_{last4}.
func (s *Service) ExportXLSX(result *entity.ExtractionResult) ([]byte, error) {
	if result == nil || len(result.VehicleTitles) == 0 {
		return nil, fmt.Errorf("no vehicle titles to export")
	}
	start := time.Now()

	f := excelize.NewFile()
	headers := []string{"Field Name", "Extracted Value", "Confidence", "Status", "Page"}

	for vi := range result.VehicleTitles {
		vehicle := &result.VehicleTitles[vi]
		sheet := fmt.Sprintf("Vehicle_%d_VIN_%s", vi+1, vehicle.VINEnding)

		if vi == 0 {
			// Rename the default sheet rather than leaving an empty Sheet1 behind.
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("new sheet %s: %w", sheet, err)
			}
		}

		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			_ = f.SetCellValue(sheet, cell, h)
		}

		row := 2
		for fi := range vehicle.Fields {
			field := &vehicle.Fields[fi]

			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}

			value := "Not Found"
			confidence := "N/A"
			if field.ExtractedValue != nil {
				value = *field.ExtractedValue
				confidence = fmt.Sprintf("%d%%", field.Confidence)
			}
			status := "Original"
			if field.IsEdited {
				status = "Edited"
			}
			page := "N/A"
			if field.Citation != nil {
				page = fmt.Sprintf("%d", field.Citation.PageNumber)
			}

			write(1, field.FieldName)
			write(2, value)
			write(3, confidence)
			write(4, status)
			write(5, page)
			row++
		}

		_ = f.SetColWidth(sheet, "A", "A", 30) // field name
		_ = f.SetColWidth(sheet, "B", "B", 40) // value
		_ = f.SetColWidth(sheet, "C", "C", 12) // confidence
		_ = f.SetColWidth(sheet, "D", "D", 10) // status
		_ = f.SetColWidth(sheet, "E", "E", 8)  // page
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"result_id", result.ID,
		"sheets", len(result.VehicleTitles),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WorkbookFilename names the export artifact by date.
func WorkbookFilename(t time.Time) string {
	return fmt.Sprintf("Vehicle_Titles_%s.xlsx", t.Format("2006-01-02"))
}
