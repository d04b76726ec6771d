package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/quintile-data/edive/internal/dataset"
)

// readJSON parses a structured-document file: a top-level array of key-value
// records, one record per row. Values keep their document types (strings stay
// raw, numbers become numeric cells); no coercion rules apply at parse time.
// Column order is the first-seen key order across records, which requires
// walking the token stream instead of decoding into Go maps.
func readJSON(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var (
		columns []string
		seen    = make(map[string]bool)
		rows    []dataset.Row
	)
	for dec.More() {
		row, keys, err := decodeRecord(dec)
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
		rows = append(rows, row)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	table := dataset.New(columns)
	for _, row := range rows {
		table.AppendRow(row)
	}
	return &Result{Table: table, Source: detectFromTable(table)}, nil
}

// expectDelim consumes one token and checks it is the given delimiter.
func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || d != want {
		return fmt.Errorf("expected %q, found %v", want, tok)
	}
	return nil
}

// decodeRecord consumes one object from the token stream and returns its row
// plus the keys in document order.
func decodeRecord(dec *json.Decoder) (dataset.Row, []string, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, nil, err
	}
	row := dataset.Row{}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key, found %v", tok)
		}
		key = strings.ToLower(strings.TrimSpace(key))

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		if key == "" {
			continue
		}
		keys = append(keys, key)
		row[key] = jsonValue(raw)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, nil, err
	}
	return row, keys, nil
}

// jsonValue maps a decoded document value onto a table cell.
func jsonValue(raw any) dataset.Value {
	switch v := raw.(type) {
	case nil:
		return dataset.NA()
	case string:
		return dataset.String(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return dataset.Number(f)
		}
		return dataset.String(v.String())
	case bool:
		if v {
			return dataset.String("true")
		}
		return dataset.String("false")
	default:
		// Nested arrays and objects are kept as their JSON text.
		b, err := json.Marshal(v)
		if err != nil {
			return dataset.NA()
		}
		return dataset.String(string(b))
	}
}
