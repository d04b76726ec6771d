package ingest

import (
	"encoding/xml"
	"errors"
	"os"
	"strings"

	"github.com/quintile-data/edive/internal/dataset"
)

// xmlField is one child element of a record: tag name plus text content.
type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// xmlRecord is one top-level child of the document root.
type xmlRecord struct {
	Fields []xmlField `xml:",any"`
}

// xmlDocument is the generic element tree: every top-level child of the root
// becomes one row, every grandchild one column.
type xmlDocument struct {
	XMLName xml.Name
	Records []xmlRecord `xml:",any"`
}

// readXML parses a markup file into raw string columns. No coercion rules
// apply at parse time; downstream consumers receive the text content as-is.
func readXML(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	// Column order is first-seen element order across all records.
	var columns []string
	seen := make(map[string]bool)
	for _, rec := range doc.Records {
		for _, f := range rec.Fields {
			name := strings.ToLower(f.XMLName.Local)
			if name != "" && !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
		}
	}
	if len(columns) == 0 && len(doc.Records) > 0 {
		return nil, &ParseError{Path: path, Err: errors.New("document records carry no child elements")}
	}

	table := dataset.New(columns)
	for _, rec := range doc.Records {
		row := make(dataset.Row, len(rec.Fields))
		for _, f := range rec.Fields {
			name := strings.ToLower(f.XMLName.Local)
			if name != "" {
				row[name] = dataset.String(strings.TrimSpace(f.Value))
			}
		}
		table.AppendRow(row)
	}

	return &Result{Table: table, Source: detectFromTable(table)}, nil
}

