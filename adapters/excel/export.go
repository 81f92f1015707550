// Package excel writes analysis results to .xlsx workbooks so reports can
// be shared outside the JSON API.
package excel

import (
	"github.com/xuri/excelize/v2"

	"healthlens/app"
	"healthlens/internal/errors"
)

// ReportWriter builds a workbook from analysis results.
type ReportWriter struct {
	file *excelize.File
}

// NewReportWriter creates an empty workbook.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{file: excelize.NewFile()}
}

// AddActivitySheet writes the activity report as a sheet with one row per
// day plus an averages footer.
func (w *ReportWriter) AddActivitySheet(result app.ActivityResult) error {
	const sheet = "Activity"
	if _, err := w.file.NewSheet(sheet); err != nil {
		return errors.Wrapf(err, "create sheet %s", sheet)
	}

	headers := []string{"Date", "Steps", "Active kcal", "Exercise min", "Distance km"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := w.file.SetCellValue(sheet, cell, h); err != nil {
			return errors.Wrap(err, "write header")
		}
	}

	for i, day := range result.Daily {
		row := i + 2
		values := []interface{}{day.Date, day.Steps, day.ActiveKcal, day.ExerciseMin, day.DistanceKm}
		if err := w.writeRow(sheet, row, values); err != nil {
			return err
		}
	}

	footer := len(result.Daily) + 3
	avg := result.Averages
	values := []interface{}{"Average", deref(avg.Steps), deref(avg.ActiveKcal), deref(avg.ExerciseMin), deref(avg.DistanceKm)}
	return w.writeRow(sheet, footer, values)
}

// AddSleepSheet writes the sleep report as a sheet with one row per night.
func (w *ReportWriter) AddSleepSheet(result app.SleepResult) error {
	const sheet = "Sleep"
	if _, err := w.file.NewSheet(sheet); err != nil {
		return errors.Wrapf(err, "create sheet %s", sheet)
	}

	headers := []string{"Date", "Total hrs", "Deep %", "Core %", "REM %", "Awake min", "Bedtime", "Waketime"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := w.file.SetCellValue(sheet, cell, h); err != nil {
			return errors.Wrap(err, "write header")
		}
	}

	for i, n := range result.Nightly {
		row := i + 2
		values := []interface{}{
			n.Date, n.TotalHours, n.DeepPct, n.CorePct, n.RemPct,
			n.AwakeMinutes, n.BedtimeLocal, n.WaketimeLocal,
		}
		if err := w.writeRow(sheet, row, values); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the workbook to disk, dropping the default empty sheet.
func (w *ReportWriter) Save(path string) error {
	if err := w.file.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "drop default sheet")
	}
	if err := w.file.SaveAs(path); err != nil {
		return errors.Wrapf(err, "save workbook %s", path)
	}
	return nil
}

func (w *ReportWriter) writeRow(sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		if err := w.file.SetCellValue(sheet, cell, v); err != nil {
			return errors.Wrapf(err, "write cell %s", cell)
		}
	}
	return nil
}

func deref(p *float64) interface{} {
	if p == nil {
		return ""
	}
	return *p
}
