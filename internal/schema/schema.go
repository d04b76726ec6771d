// Package schema classifies datasets into source types from their column-name
// signatures and holds the static per-source coercion-rule tables applied
// during typed ingestion.
package schema

import (
	"fmt"
	"strings"
)

// SourceType tags a dataset with the upstream feed it came from.
// It is determined once per dataset from column-name signatures and is
// immutable thereafter.
type SourceType string

const (
	// SourceAPI is the API transaction-log export.
	SourceAPI SourceType = "API"
	// SourceTag is the tag-based log export.
	SourceTag SourceType = "TAG"
	// SourceAmazon is the Amazon marketplace feed.
	SourceAmazon SourceType = "AMAZON"
	// SourceUnknown means no signature matched.
	SourceUnknown SourceType = "UNKNOWN"
)

// Coercion selects how a raw cell is typed during ingestion.
type Coercion uint8

const (
	// CoerceString preserves the raw text.
	CoerceString Coercion = iota
	// CoerceNumber parses a float; non-numeric input becomes missing.
	CoerceNumber
	// CoerceDatetime parses a timestamp; unparseable input becomes missing.
	CoerceDatetime
)

// RuleTable maps lower-cased column names to their coercion rule.
// Columns absent from a table get no rule; a rule never fabricates a column.
type RuleTable map[string]Coercion

// signature pairs a marker column set with its source type. Detection walks
// the list in order and assigns the first type whose markers intersect the
// dataset's columns.
type signature struct {
	markers []string
	source  SourceType
}

var signatures = []signature{
	{markers: []string{"id_api_hit", "dt_transaction"}, source: SourceAPI},
	{markers: []string{"id_log", "datacomp"}, source: SourceTag},
	{markers: []string{"asin", "postal_code"}, source: SourceAmazon},
}

// Detect classifies a set of column names into a source type.
// Matching is case-insensitive and priority-ordered; an empty or nil column
// set yields SourceUnknown. Detect never fails, so header-only probes can
// reuse it before a full parse.
func Detect(columns []string) SourceType {
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[strings.ToLower(strings.TrimSpace(c))] = true
	}
	for _, sig := range signatures {
		for _, m := range sig.markers {
			if set[m] {
				return sig.source
			}
		}
	}
	return SourceUnknown
}

// UnknownTypeError reports a registry lookup for a source type outside the
// closed set. It indicates a programming error, not bad input.
type UnknownTypeError struct {
	Source SourceType
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("no coercion rules registered for source type %q", e.Source)
}

// Rules returns the static coercion-rule table for a source type.
func Rules(source SourceType) (RuleTable, error) {
	switch source {
	case SourceAPI:
		return apiRules, nil
	case SourceTag:
		return tagRules, nil
	case SourceAmazon:
		return amazonRules, nil
	default:
		return nil, &UnknownTypeError{Source: source}
	}
}
