package telemetry

import (
	"fmt"
	"io"
	"time"

	"cropadvisory/models"

	"github.com/xuri/excelize/v2"
)

const (
	readingsSheet = "Readings"
	currentSheet  = "Current"
)

// ExportWorkbook writes the snapshot as an XLSX workbook with the chart
// history on one sheet and the current reading on another.
func ExportWorkbook(w io.Writer, snap models.TelemetrySnapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", readingsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	headers := []string{"Hour", "Temperature (°C)", "Soil Moisture (%)", "Humidity (%)"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(readingsSheet, cell, header)
		f.SetColWidth(readingsSheet, cell[:1], cell[:1], 18)
	}

	for i, label := range snap.Series.Labels {
		row := i + 2
		f.SetCellValue(readingsSheet, fmt.Sprintf("A%d", row), label)
		f.SetCellValue(readingsSheet, fmt.Sprintf("B%d", row), round1(at(snap.Series.Temperature, i)))
		f.SetCellValue(readingsSheet, fmt.Sprintf("C%d", row), round1(at(snap.Series.Moisture, i)))
		f.SetCellValue(readingsSheet, fmt.Sprintf("D%d", row), round1(at(snap.Series.Humidity, i)))
	}

	if _, err := f.NewSheet(currentSheet); err != nil {
		return fmt.Errorf("adding sheet: %w", err)
	}
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Temperature (°C)", snap.Reading.Temperature},
		{"Soil Moisture (%)", snap.Reading.Moisture},
		{"Humidity (%)", snap.Reading.Humidity},
		{"Tick", snap.Tick},
		{"Updated", snap.UpdatedAt.UTC().Format(time.RFC3339)},
	}
	for i, r := range rows {
		f.SetCellValue(currentSheet, fmt.Sprintf("A%d", i+1), r[0])
		f.SetCellValue(currentSheet, fmt.Sprintf("B%d", i+1), r[1])
	}
	f.SetColWidth(currentSheet, "A", "B", 22)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func at(vs []float64, i int) float64 {
	if i < len(vs) {
		return vs[i]
	}
	return 0
}
