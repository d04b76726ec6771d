// Package report renders the result aggregate of one validation run into a
// styled Excel workbook: a summary sheet listing every check with its
// classification, and one detail sheet per check holding the sample rows or
// the error text, cross-linked both ways.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/quintile-data/edive/internal/checks"
	"github.com/quintile-data/edive/internal/dataset"
	"github.com/quintile-data/edive/internal/runner"
)

// Meta carries the presentation inputs that come from outside the core:
// output destination, user identity, dataset name and run timestamp.
type Meta struct {
	DatasetName   string
	User          string
	OutputDir     string
	Timestamp     time.Time
	MaxSampleRows int
}

const summarySheet = "Summary"

// summary layout: title block on top, header row 8, data from row 9.
const headerRow = 8

// Write renders the aggregate and returns the path of the workbook it wrote.
func Write(agg *runner.Aggregate, meta Meta) (string, error) {
	if err := os.MkdirAll(meta.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", err
	}

	st, err := newStyles(f)
	if err != nil {
		return "", err
	}

	if err := writeSummary(f, st, agg, meta); err != nil {
		return "", err
	}
	for _, rec := range agg.Records() {
		if err := writeDetailSheet(f, st, rec, meta.MaxSampleRows); err != nil {
			return "", err
		}
	}

	name := fmt.Sprintf("%s_%s.xlsx", meta.DatasetName, meta.Timestamp.Format("2006-01-02_150405"))
	path := filepath.Join(meta.OutputDir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving report: %w", err)
	}
	return path, nil
}

// styles holds the style ids used across sheets.
type styles struct {
	title     int
	cell      int
	bigText   int
	text      int
	classOK   int
	classErr  int
	classInfo int
	link      int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	border := []excelize.Border{
		{Type: "left", Color: "B7DEE8", Style: 1},
		{Type: "right", Color: "B7DEE8", Style: 1},
		{Type: "top", Color: "B7DEE8", Style: 1},
		{Type: "bottom", Color: "B7DEE8", Style: 1},
	}

	st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Family: "Segoe UI"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2C6DF6"}},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return st, err
	}
	st.cell, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 12, Family: "Segoe UI Semibold", Color: "2C6DF6"},
		Border: border,
	})
	if err != nil {
		return st, err
	}
	st.bigText, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Family: "Segoe UI"},
	})
	if err != nil {
		return st, err
	}
	st.text, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 12, Family: "Segoe UI"},
	})
	if err != nil {
		return st, err
	}

	classStyle := func(bg string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Italic: true, Bold: true, Size: 10, Color: "FFFFFF", Family: "Segoe UI"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{bg}},
			Border:    border,
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
	}
	if st.classOK, err = classStyle("00B050"); err != nil {
		return st, err
	}
	if st.classErr, err = classStyle("FF0000"); err != nil {
		return st, err
	}
	if st.classInfo, err = classStyle("7030A0"); err != nil {
		return st, err
	}

	st.link, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Underline: "single", Italic: true, Size: 10, Color: "538DD5", Family: "Segoe UI"},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return st, err
}

// classificationStyle maps a record class onto its summary fill.
func (st styles) classificationStyle(class checks.Classification) int {
	switch class {
	case checks.ClassError:
		return st.classErr
	case checks.ClassInfo:
		return st.classInfo
	default:
		return st.classOK
	}
}

func writeSummary(f *excelize.File, st styles, agg *runner.Aggregate, meta Meta) error {
	f.SetCellValue(summarySheet, "A2", "eDive Report")
	f.SetCellStyle(summarySheet, "A2", "A2", st.bigText)
	f.SetCellValue(summarySheet, "A3", fmt.Sprintf("name:  %s", meta.DatasetName))
	f.SetCellStyle(summarySheet, "A3", "A3", st.text)
	f.SetCellValue(summarySheet, "A4", fmt.Sprintf("User: %s", meta.User))

	headers := []string{"INDEX", "Validation", "Ocurrences", "Validation Type", "Go To"}
	widths := make([]float64, len(headers))
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return err
		}
		f.SetCellValue(summarySheet, cell, h)
		f.SetCellStyle(summarySheet, cell, cell, st.title)
		widths[i] = float64(len(h))
	}

	for n, rec := range agg.Records() {
		row := headerRow + 1 + n
		values := []any{rec.Index, rec.Name, rec.Occurrences, string(rec.Class), "Sample"}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			f.SetCellValue(summarySheet, cell, v)
			f.SetCellStyle(summarySheet, cell, cell, st.cell)
			if w := float64(len(fmt.Sprint(v))); w > widths[i] {
				widths[i] = w
			}
		}

		classCell, _ := excelize.CoordinatesToCellName(4, row)
		f.SetCellStyle(summarySheet, classCell, classCell, st.classificationStyle(rec.Class))

		linkCell, _ := excelize.CoordinatesToCellName(5, row)
		target := fmt.Sprintf("'%s'!A1", detailSheetName(rec))
		if err := f.SetCellHyperLink(summarySheet, linkCell, target, "Location"); err != nil {
			return err
		}
		f.SetCellStyle(summarySheet, linkCell, linkCell, st.link)
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(summarySheet, col, col, w+2); err != nil {
			return err
		}
	}
	return nil
}

// detailSheetName builds the "<index> - <name>" sheet name within Excel's
// 31-character sheet-name limit.
func detailSheetName(rec runner.Record) string {
	name := fmt.Sprintf("%d - %s", rec.Index, rec.Name)
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

func writeDetailSheet(f *excelize.File, st styles, rec runner.Record, maxRows int) error {
	sheet := detailSheetName(rec)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Back to Summary")
	if err := f.SetCellHyperLink(sheet, "A1", "'Summary'!A1", "Location"); err != nil {
		return err
	}
	f.SetCellStyle(sheet, "A1", "A1", st.title)

	if rec.Failed() {
		f.SetCellValue(sheet, "A2", "Error")
		f.SetCellStyle(sheet, "A2", "A2", st.title)
		f.SetCellValue(sheet, "A3", rec.Err)
		return nil
	}
	return writeSampleTable(f, st, sheet, rec.Sample, maxRows)
}

// writeSampleTable lays a sample table out from row 2: header then rows,
// capped at maxRows to keep workbooks manageable.
func writeSampleTable(f *excelize.File, st styles, sheet string, sample *dataset.Table, maxRows int) error {
	cols := sample.Columns()
	for i, c := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, c)
		f.SetCellStyle(sheet, cell, cell, st.title)
	}

	n := sample.NumRows()
	if maxRows > 0 && n > maxRows {
		n = maxRows
	}
	for r := 0; r < n; r++ {
		for i, c := range cols {
			cell, err := excelize.CoordinatesToCellName(i+1, r+3)
			if err != nil {
				return err
			}
			v := sample.Value(r, c)
			switch v.Kind() {
			case dataset.KindNumber:
				num, _ := v.Num()
				f.SetCellValue(sheet, cell, num)
			case dataset.KindDatetime:
				f.SetCellValue(sheet, cell, v.Display())
			case dataset.KindString:
				f.SetCellValue(sheet, cell, v.Str())
			default:
				// missing stays blank
			}
		}
	}
	return nil
}
