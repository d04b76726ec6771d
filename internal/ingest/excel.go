package ingest

import (
	"errors"

	"github.com/xuri/excelize/v2"

	"github.com/quintile-data/edive/internal/dataset"
)

// readExcel parses the first sheet of a workbook with the same two-pass
// strategy as delimited text: header row first to classify and select rules,
// then the body with per-column coercion. Legacy binary .xls workbooks are
// not parseable by excelize and surface as a ParseError.
func readExcel(path string) (*Result, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Path: path, Err: errors.New("workbook has no sheets")}
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Path: path, Err: errors.New("sheet has no header row")}
	}

	header := rows[0]
	source, rules := rulesForHeader(header)

	table := dataset.New(header)
	names := headerNames(header)
	for _, record := range rows[1:] {
		table.AppendRow(typedRow(names, record, rules))
	}

	return &Result{Table: table, Source: source}, nil
}
