package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/titledesk/title-review/constants"
	"github.com/titledesk/title-review/internal/entity"
	"github.com/titledesk/title-review/internal/extract"
)

func sampleResult(t *testing.T) *entity.ExtractionResult {
	t.Helper()
	pages := 2
	result, err := extract.NewSimulated(0, nil).Extract(context.Background(), []entity.Document{
		{ID: "d1", Name: "title_1.pdf", Size: 100, PageCount: &pages, Status: constants.DocumentProcessing},
		{ID: "d2", Name: "title_2.pdf", Size: 100, PageCount: &pages, Status: constants.DocumentProcessing},
	})
	require.NoError(t, err)
	return result
}

func TestExportXLSXSheetPerVehicle(t *testing.T) {
	result := sampleResult(t)

	data, err := NewService(nil).ExportXLSX(result)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{
		"Vehicle_1_VIN_1481",
		"Vehicle_2_VIN_9425",
		"Vehicle_3_VIN_7782",
	}, wb.GetSheetList())
}

func TestExportXLSXCellContents(t *testing.T) {
	result := sampleResult(t)

	// Mark one field edited so the status column shows it.
	result.VehicleTitles[0].Field("Owner Name").IsEdited = true

	data, err := NewService(nil).ExportXLSX(result)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	sheet := "Vehicle_1_VIN_1481"
	cell := func(ref string) string {
		v, err := wb.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Field Name", cell("A1"))
	assert.Equal(t, "Extracted Value", cell("B1"))
	assert.Equal(t, "Confidence", cell("C1"))
	assert.Equal(t, "Status", cell("D1"))
	assert.Equal(t, "Page", cell("E1"))

	// Row 2 is the first canonical field: the VIN.
	assert.Equal(t, constants.FieldVIN, cell("A2"))
	assert.Equal(t, "1HGCM82633A001481", cell("B2"))
	assert.Equal(t, "98%", cell("C2"))
	assert.Equal(t, "Original", cell("D2"))
	assert.Equal(t, "1", cell("E2"))

	// Every canonical field gets a row, found or not.
	rows, err := wb.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, len(constants.TitleFields)+1)

	for i, name := range constants.TitleFields {
		row := i + 2
		ref, _ := excelize.CoordinatesToCellName(1, row)
		assert.Equal(t, name, cell(ref))

		field := result.VehicleTitles[0].Field(name)
		valueRef, _ := excelize.CoordinatesToCellName(2, row)
		statusRef, _ := excelize.CoordinatesToCellName(4, row)
		if field.ExtractedValue == nil {
			assert.Equal(t, "Not Found", cell(valueRef))
		}
		if name == "Owner Name" {
			assert.Equal(t, "Edited", cell(statusRef))
		}
	}
}

func TestExportXLSXNotFoundRow(t *testing.T) {
	result := sampleResult(t)

	// The Honda has no Co-Owner Name.
	require.Nil(t, result.VehicleTitles[0].Field(constants.FieldCoOwnerName).ExtractedValue)
	rowIdx := constants.TitleFieldIndex(constants.FieldCoOwnerName) + 2

	data, err := NewService(nil).ExportXLSX(result)
	require.NoError(t, err)
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	ref := func(col int) string {
		c, _ := excelize.CoordinatesToCellName(col, rowIdx)
		v, err := wb.GetCellValue("Vehicle_1_VIN_1481", c)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Not Found", ref(2))
	assert.Equal(t, "N/A", ref(3))
	assert.Equal(t, "N/A", ref(5))
}

func TestExportXLSXRequiresVehicles(t *testing.T) {
	_, err := NewService(nil).ExportXLSX(nil)
	require.Error(t, err)
	_, err = NewService(nil).ExportXLSX(&entity.ExtractionResult{})
	require.Error(t, err)
}

func TestWorkbookFilename(t *testing.T) {
	ts := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "Vehicle_Titles_2026-03-14.xlsx", WorkbookFilename(ts))
}
