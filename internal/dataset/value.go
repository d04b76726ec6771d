package dataset

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the type carried by a Value.
type Kind uint8

const (
	// KindMissing marks an absent or unparseable cell.
	KindMissing Kind = iota
	// KindString is a raw text cell.
	KindString
	// KindNumber is a numeric cell.
	KindNumber
	// KindDatetime is a parsed timestamp cell.
	KindDatetime
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDatetime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Value is a single typed cell of a canonical table.
// The zero Value is the missing marker.
type Value struct {
	kind Kind
	str  string
	num  float64
	ts   time.Time
}

// NA returns the missing-value marker.
func NA() Value {
	return Value{}
}

// String builds a text value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number builds a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Datetime builds a timestamp value.
func Datetime(t time.Time) Value {
	return Value{kind: KindDatetime, ts: t}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is the missing marker.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Str returns the text content for string values, "" otherwise.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// Num returns the numeric content and whether the value is numeric.
func (v Value) Num() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Time returns the timestamp content and whether the value is a datetime.
func (v Value) Time() (time.Time, bool) {
	return v.ts, v.kind == KindDatetime
}

// Display renders the value for user-facing output (report cells, stdout).
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDatetime:
		if v.ts.Hour() == 0 && v.ts.Minute() == 0 && v.ts.Second() == 0 {
			return v.ts.Format("2006-01-02")
		}
		return v.ts.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// Equal reports whether two values carry the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindDatetime:
		return v.ts.Equal(o.ts)
	default:
		return true
	}
}

// datetimeLayouts are tried in order when coercing raw text to a timestamp.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"2006/01/02",
}

// ParseNumber coerces raw text to a numeric value.
// Unparseable or empty input yields the missing marker, never an error.
func ParseNumber(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return NA()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Exports from some stores use a comma decimal separator.
		f, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return NA()
		}
	}
	return Number(f)
}

// ParseDatetime coerces raw text to a timestamp value.
// Unparseable or empty input yields the missing marker, never an error.
func ParseDatetime(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return NA()
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Datetime(t)
		}
	}
	return NA()
}
