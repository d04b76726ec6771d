package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/quintile-data/edive/internal/dataset"
	"github.com/quintile-data/edive/internal/schema"
)

// readDelimited parses a delimited-text file in two passes over one stream:
// the header record first, to classify the source and select coercion rules,
// then the body with per-column coercion. forced overrides classification
// when the caller already knows the schema (the pipe-delimited Amazon feed).
func readDelimited(path string, comma rune, forced schema.SourceType) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	// Store exports are frequently ragged; short records read as missing
	// cells and surplus cells are dropped.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: path, Err: errors.New("file has no header line")}
		}
		return nil, &ParseError{Path: path, Err: err}
	}

	var (
		source schema.SourceType
		rules  schema.RuleTable
	)
	if forced != schema.SourceUnknown {
		source = forced
		rules, err = schema.Rules(forced)
		if err != nil {
			return nil, err
		}
	} else {
		source, rules = rulesForHeader(header)
	}

	table := dataset.New(header)
	names := headerNames(header)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		table.AppendRow(typedRow(names, record, rules))
	}

	return &Result{Table: table, Source: source}, nil
}
