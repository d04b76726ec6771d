// Package ingest parses raw input files into the canonical typed table.
// Each supported extension has its own parsing strategy; delimited and
// spreadsheet formats run a two-pass header-probe-then-typed-parse using the
// coercion rules selected by schema.Detect. Ingestion failures are fatal for
// the run: there is no partial-table recovery.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quintile-data/edive/internal/dataset"
	"github.com/quintile-data/edive/internal/schema"
)

// UnsupportedFormatError reports an input file whose extension matches no
// parsing strategy.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q (expected .csv, .xml, .json, .xls, .xlsx or .txt000)", e.Ext)
}

// ParseError reports malformed content for the chosen format.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Result is the outcome of ingesting one file.
type Result struct {
	Table  *dataset.Table
	Source schema.SourceType
}

// ReadFile dispatches on the file extension, parses the file into a canonical
// table, and normalizes empty-string cells to the missing marker.
func ReadFile(path string) (*Result, error) {
	var (
		res *Result
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		res, err = readDelimited(path, ',', schema.SourceUnknown)
	case ".xml":
		res, err = readXML(path)
	case ".json":
		res, err = readJSON(path)
	case ".xls", ".xlsx":
		res, err = readExcel(path)
	case ".txt000":
		// The Amazon feed has exactly one schema, so the rules are forced
		// regardless of header content.
		res, err = readDelimited(path, '|', schema.SourceAmazon)
	default:
		return nil, &UnsupportedFormatError{Ext: ext}
	}
	if err != nil {
		return nil, err
	}
	res.Table.NormalizeMissing()
	return res, nil
}

// coerceCell applies a single coercion rule to a raw cell.
func coerceCell(raw string, rule schema.Coercion) dataset.Value {
	switch rule {
	case schema.CoerceNumber:
		return dataset.ParseNumber(raw)
	case schema.CoerceDatetime:
		return dataset.ParseDatetime(raw)
	default:
		return dataset.String(raw)
	}
}

// headerNames lower-cases header cells, preserving positions so records can
// be aligned by index even when the header carries blanks or duplicates.
func headerNames(header []string) []string {
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return names
}

// typedRow materializes one record into a table row, applying per-column
// coercions. names is the position-aligned lower-cased header; columns
// without a rule keep their raw text.
func typedRow(names []string, record []string, rules schema.RuleTable) dataset.Row {
	row := make(dataset.Row, len(names))
	for i, col := range names {
		if i >= len(record) {
			break
		}
		if col == "" {
			continue
		}
		rule := schema.CoerceString
		if rules != nil {
			if r, ok := rules[col]; ok {
				rule = r
			}
		}
		row[col] = coerceCell(record[i], rule)
	}
	return row
}

// detectFromTable classifies formats whose schema is only known after a full
// parse (markup and structured-document inputs).
func detectFromTable(t *dataset.Table) schema.SourceType {
	return schema.Detect(t.Columns())
}

// rulesForHeader classifies the header and looks up the matching coercion
// table. An unknown signature gets no coercion; the caller decides whether an
// unknown dataset is still worth anything.
func rulesForHeader(columns []string) (schema.SourceType, schema.RuleTable) {
	source := schema.Detect(columns)
	if source == schema.SourceUnknown {
		return source, nil
	}
	rules, err := schema.Rules(source)
	if err != nil {
		// Detect only returns members of the closed set.
		return schema.SourceUnknown, nil
	}
	return source, rules
}
