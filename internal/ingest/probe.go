package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/quintile-data/edive/internal/schema"
)

// DetectSource classifies a file's source type from its header without
// materializing the typed table, where the format allows it. Markup and
// structured-document formats only reveal their columns after a full parse.
func DetectSource(path string) (schema.SourceType, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return probeDelimited(path, ',')
	case ".txt000":
		// Single fixed schema; no probe needed.
		return schema.SourceAmazon, nil
	case ".xls", ".xlsx":
		return probeExcel(path)
	case ".xml", ".json":
		res, err := ReadFile(path)
		if err != nil {
			return schema.SourceUnknown, err
		}
		return res.Source, nil
	default:
		return schema.SourceUnknown, &UnsupportedFormatError{Ext: ext}
	}
}

// probeDelimited reads only the header record. An empty or unreadable header
// classifies as unknown rather than failing.
func probeDelimited(path string, comma rune) (schema.SourceType, error) {
	f, err := os.Open(path)
	if err != nil {
		return schema.SourceUnknown, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return schema.SourceUnknown, nil
		}
		return schema.SourceUnknown, &ParseError{Path: path, Err: err}
	}
	return schema.Detect(header), nil
}

func probeExcel(path string) (schema.SourceType, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return schema.SourceUnknown, &ParseError{Path: path, Err: err}
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return schema.SourceUnknown, nil
	}
	rows, err := wb.Rows(sheets[0])
	if err != nil {
		return schema.SourceUnknown, &ParseError{Path: path, Err: err}
	}
	defer rows.Close()
	if !rows.Next() {
		return schema.SourceUnknown, nil
	}
	header, err := rows.Columns()
	if err != nil {
		return schema.SourceUnknown, &ParseError{Path: path, Err: err}
	}
	return schema.Detect(header), nil
}
