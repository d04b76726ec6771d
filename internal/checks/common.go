package checks

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/quintile-data/edive/internal/dataset"
)

// countMissing returns the number of missing cells in a column.
func countMissing(t *dataset.Table, col string) int {
	n := 0
	for i := 0; i < t.NumRows(); i++ {
		if t.Value(i, col).IsMissing() {
			n++
		}
	}
	return n
}

// numbers collects the non-missing numeric cells of a column.
func numbers(t *dataset.Table, col string) []float64 {
	var out []float64
	for i := 0; i < t.NumRows(); i++ {
		if f, ok := t.Value(i, col).Num(); ok {
			out = append(out, f)
		}
	}
	return out
}

// times collects the non-missing datetime cells of a column.
func times(t *dataset.Table, col string) []time.Time {
	var out []time.Time
	for i := 0; i < t.NumRows(); i++ {
		if ts, ok := t.Value(i, col).Time(); ok {
			out = append(out, ts)
		}
	}
	return out
}

// splitParts splits a pipe-joined cart cell into its per-item parts.
func splitParts(v dataset.Value) []string {
	if v.Kind() != dataset.KindString {
		return nil
	}
	parts := strings.Split(v.Str(), "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ColumnsCompleteness reports, per column, how many cells are missing.
// Fully populated columns are left out of the sample.
func ColumnsCompleteness() Check {
	return Check{Name: "columns_completeness", Class: ClassCompleteness, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		out := dataset.New([]string{"column", "missing", "rows", "pct_missing"})
		for _, col := range t.Columns() {
			missing := countMissing(t, col)
			if missing == 0 {
				continue
			}
			pct := 0.0
			if t.NumRows() > 0 {
				pct = float64(missing) / float64(t.NumRows()) * 100
			}
			out.AppendRow(dataset.Row{
				"column":      dataset.String(col),
				"missing":     dataset.Number(float64(missing)),
				"rows":        dataset.Number(float64(t.NumRows())),
				"pct_missing": dataset.Number(math.Round(pct*100) / 100),
			})
		}
		return out, nil
	}}
}

// Conformity reports the frequency of every distinct value in a column,
// missing marker included, most frequent first.
func Conformity(name, col string) Check {
	return Check{Name: name, Class: ClassConformity, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, col); err != nil {
			return nil, err
		}
		counts := make(map[string]int)
		var order []string
		for i := 0; i < t.NumRows(); i++ {
			key := t.Value(i, col).Display()
			if t.Value(i, col).IsMissing() {
				key = "<missing>"
			}
			if _, ok := counts[key]; !ok {
				order = append(order, key)
			}
			counts[key]++
		}
		sort.SliceStable(order, func(a, b int) bool { return counts[order[a]] > counts[order[b]] })
		out := dataset.New([]string{col, "count"})
		for _, key := range order {
			out.AppendRow(dataset.Row{
				col:     dataset.String(key),
				"count": dataset.Number(float64(counts[key])),
			})
		}
		return out, nil
	}}
}

// SalesValidation reports rows that carry a transaction id but a missing or
// non-positive sale amount.
func SalesValidation(name, idCol, totalCol string) Check {
	return Check{Name: name, Class: ClassConsistency, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, idCol, totalCol); err != nil {
			return nil, err
		}
		sample := t.Filter(func(r dataset.Row) bool {
			if r[idCol].IsMissing() {
				return false
			}
			f, ok := r[totalCol].Num()
			return !ok || f <= 0
		})
		return sample, nil
	}}
}

// PaymentTypeValidation reports rows whose payment-type code is outside the
// known set.
func PaymentTypeValidation(name, col string, allowed []float64) Check {
	set := make(map[float64]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	return Check{Name: name, Class: ClassConsistency, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, col); err != nil {
			return nil, err
		}
		sample := t.Filter(func(r dataset.Row) bool {
			f, ok := r[col].Num()
			return ok && !set[f]
		})
		return sample, nil
	}}
}

// rowAmount computes the expected sale amount of a row: unit value times
// quantity, summed across pipe-joined cart parts when the export packs
// several items into one cell.
func rowAmount(r dataset.Row, valueCol, qtyCol string) (float64, bool) {
	if v, ok := r[valueCol].Num(); ok {
		q, qok := r[qtyCol].Num()
		if !qok {
			return 0, false
		}
		return v * q, true
	}
	vals := splitParts(r[valueCol])
	qtys := splitParts(r[qtyCol])
	if len(vals) == 0 || len(vals) != len(qtys) {
		return 0, false
	}
	total := 0.0
	for i := range vals {
		v := dataset.ParseNumber(vals[i])
		q := dataset.ParseNumber(qtys[i])
		vf, vok := v.Num()
		qf, qok := q.Num()
		if !vok || !qok {
			return 0, false
		}
		total += vf * qf
	}
	return total, true
}

// TotalspentMatchTotal reports rows where the recorded total differs from
// unit value times quantity by more than one cent.
func TotalspentMatchTotal(name, totalCol, valueCol, qtyCol string) Check {
	return Check{Name: name, Class: ClassConsistency, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, totalCol, valueCol, qtyCol); err != nil {
			return nil, err
		}
		sample := t.Filter(func(r dataset.Row) bool {
			total, ok := r[totalCol].Num()
			if !ok {
				return false
			}
			expected, ok := rowAmount(r, valueCol, qtyCol)
			return ok && math.Abs(total-expected) > 0.01
		})
		return sample, nil
	}}
}

// ZipcodeLength reports rows whose zip code does not carry the expected
// number of digits once separators are stripped.
func ZipcodeLength(name, col string, digits int) Check {
	return Check{Name: name, Class: ClassCompliance, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, col); err != nil {
			return nil, err
		}
		sample := t.Filter(func(r dataset.Row) bool {
			v := r[col]
			if v.IsMissing() {
				return false
			}
			n := 0
			for _, c := range v.Display() {
				if c >= '0' && c <= '9' {
					n++
				}
			}
			return n != digits
		})
		return sample, nil
	}}
}

// DuplicatedIDs reports every row whose identifier value occurs more than
// once in the dataset.
func DuplicatedIDs(name, col string) Check {
	return Check{Name: name, Class: ClassConsistency, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, col); err != nil {
			return nil, err
		}
		counts := make(map[string]int)
		for i := 0; i < t.NumRows(); i++ {
			if v := t.Value(i, col); !v.IsMissing() {
				counts[v.Display()]++
			}
		}
		sample := t.Filter(func(r dataset.Row) bool {
			v := r[col]
			return !v.IsMissing() && counts[v.Display()] > 1
		})
		return sample, nil
	}}
}

// DuplicatedAll reports rows that are exact duplicates across every column.
func DuplicatedAll() Check {
	return Check{Name: "duplicated_all", Class: ClassConsistency, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		counts := make(map[string]int)
		cols := t.Columns()
		key := func(r dataset.Row) string {
			parts := make([]string, len(cols))
			for i, c := range cols {
				parts[i] = r[c].Display()
			}
			return strings.Join(parts, "\x1f")
		}
		for i := 0; i < t.NumRows(); i++ {
			counts[key(t.Row(i))]++
		}
		sample := t.Filter(func(r dataset.Row) bool { return counts[key(r)] > 1 })
		return sample, nil
	}}
}

// SizeComparison reports rows whose pipe-joined cart columns disagree on the
// number of items they carry.
func SizeComparison(name string, cols ...string) Check {
	return Check{Name: name, Class: ClassConsistency, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, cols...); err != nil {
			return nil, err
		}
		sample := t.Filter(func(r dataset.Row) bool {
			want := -1
			for _, c := range cols {
				if r[c].IsMissing() {
					continue
				}
				n := len(splitParts(r[c]))
				if want == -1 {
					want = n
					continue
				}
				if n != want {
					return true
				}
			}
			return false
		})
		return sample, nil
	}}
}

// SalesValidationSplit reports rows whose pipe-joined value cells contain a
// non-numeric part, so the cart cannot be priced item by item.
func SalesValidationSplit(name, valueCol string) Check {
	return Check{Name: name, Class: ClassConsistency, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, valueCol); err != nil {
			return nil, err
		}
		sample := t.Filter(func(r dataset.Row) bool {
			v := r[valueCol]
			if v.IsMissing() || v.Kind() != dataset.KindString {
				return false
			}
			for _, part := range splitParts(v) {
				if part != "" && dataset.ParseNumber(part).IsMissing() {
					return true
				}
			}
			return false
		})
		return sample, nil
	}}
}

// RepeatedProductName reports rows whose cart repeats the same product name.
func RepeatedProductName(name, col string) Check {
	return Check{Name: name, Class: ClassConsistency, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, col); err != nil {
			return nil, err
		}
		sample := t.Filter(func(r dataset.Row) bool {
			seen := make(map[string]bool)
			for _, part := range splitParts(r[col]) {
				if part == "" {
					continue
				}
				if seen[part] {
					return true
				}
				seen[part] = true
			}
			return false
		})
		return sample, nil
	}}
}

// WrongColumnsWithPipe reports, per column, how many cells contain a pipe in
// columns that are not pipe-joined cart columns.
func WrongColumnsWithPipe(cartCols ...string) Check {
	cart := make(map[string]bool, len(cartCols))
	for _, c := range cartCols {
		cart[strings.ToLower(c)] = true
	}
	return Check{Name: "wrong_columns_with_pipe", Class: ClassCompliance, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		out := dataset.New([]string{"column", "cells_with_pipe"})
		for _, col := range t.Columns() {
			if cart[col] {
				continue
			}
			n := 0
			for i := 0; i < t.NumRows(); i++ {
				v := t.Value(i, col)
				if v.Kind() == dataset.KindString && strings.Contains(v.Str(), "|") {
					n++
				}
			}
			if n > 0 {
				out.AppendRow(dataset.Row{
					"column":          dataset.String(col),
					"cells_with_pipe": dataset.Number(float64(n)),
				})
			}
		}
		return out, nil
	}}
}

// TotalRows reports the dataset row count.
func TotalRows() Check {
	return Check{Name: "total_rows", Class: ClassInfo, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		out := dataset.New([]string{"total_rows"})
		out.AppendRow(dataset.Row{"total_rows": dataset.Number(float64(t.NumRows()))})
		return out, nil
	}}
}

// TotalColumns reports the dataset column count.
func TotalColumns() Check {
	return Check{Name: "total_columns", Class: ClassInfo, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		out := dataset.New([]string{"total_columns"})
		out.AppendRow(dataset.Row{"total_columns": dataset.Number(float64(t.NumCols()))})
		return out, nil
	}}
}

// FirstDay reports the earliest date in the dataset's date column.
func FirstDay(col string) Check {
	return Check{Name: "first_day", Class: ClassInfo, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		return boundaryDay(t, col, "first_day", false)
	}}
}

// LastDay reports the latest date in the dataset's date column.
func LastDay(col string) Check {
	return Check{Name: "last_day", Class: ClassInfo, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		return boundaryDay(t, col, "last_day", true)
	}}
}

func boundaryDay(t *dataset.Table, col, label string, latest bool) (*dataset.Table, error) {
	if err := requireColumns(t, col); err != nil {
		return nil, err
	}
	out := dataset.New([]string{label})
	ts := times(t, col)
	if len(ts) == 0 {
		out.AppendRow(dataset.Row{label: dataset.NA()})
		return out, nil
	}
	bound := ts[0]
	for _, v := range ts[1:] {
		if latest && v.After(bound) || !latest && v.Before(bound) {
			bound = v
		}
	}
	out.AppendRow(dataset.Row{label: dataset.Datetime(bound)})
	return out, nil
}

// MissingDays reports calendar days between the dataset's first and last date
// that carry no rows at all.
func MissingDays(col string) Check {
	return Check{Name: "missing_days", Class: ClassCompleteness, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, col); err != nil {
			return nil, err
		}
		ts := times(t, col)
		out := dataset.New([]string{"missing_day"})
		if len(ts) == 0 {
			return out, nil
		}
		day := func(v time.Time) time.Time {
			return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		}
		first, last := day(ts[0]), day(ts[0])
		present := make(map[time.Time]bool, len(ts))
		for _, v := range ts {
			d := day(v)
			present[d] = true
			if d.Before(first) {
				first = d
			}
			if d.After(last) {
				last = d
			}
		}
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if !present[d] {
				out.AppendRow(dataset.Row{"missing_day": dataset.Datetime(d)})
			}
		}
		return out, nil
	}}
}

// Threshold reports rows whose numeric column exceeds a fixed ceiling.
func Threshold(name, col string, limit float64) Check {
	return Check{Name: name, Class: ClassConsistency, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, col); err != nil {
			return nil, err
		}
		sample := t.Filter(func(r dataset.Row) bool {
			f, ok := r[col].Num()
			return ok && f > limit
		})
		return sample, nil
	}}
}

// Outlier reports rows whose numeric column falls outside 1.5 IQR of the
// column's quartiles.
func Outlier(name, col string) Check {
	return Check{Name: name, Class: ClassConsistency, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, col); err != nil {
			return nil, err
		}
		vals := numbers(t, col)
		if len(vals) < 4 {
			return t.Head(0), nil
		}
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)
		q1 := quantile(sorted, 0.25)
		q3 := quantile(sorted, 0.75)
		iqr := q3 - q1
		lo, hi := q1-1.5*iqr, q3+1.5*iqr
		sample := t.Filter(func(r dataset.Row) bool {
			f, ok := r[col].Num()
			return ok && (f < lo || f > hi)
		})
		return sample, nil
	}}
}

// quantile interpolates the q-th quantile of sorted values.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// UndefinedCount reports, per column, how many cells hold the literal
// placeholder "undefined" that some exports emit for absent values.
func UndefinedCount() Check {
	return Check{Name: "undefined_count", Class: ClassConformity, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		out := dataset.New([]string{"column", "count"})
		for _, col := range t.Columns() {
			n := 0
			for i := 0; i < t.NumRows(); i++ {
				v := t.Value(i, col)
				if v.Kind() == dataset.KindString && strings.EqualFold(strings.TrimSpace(v.Str()), "undefined") {
					n++
				}
			}
			if n > 0 {
				out.AppendRow(dataset.Row{
					"column": dataset.String(col),
					"count":  dataset.Number(float64(n)),
				})
			}
		}
		return out, nil
	}}
}

// MarketplaceAnalysis reports how many rows carry a marketplace sale id
// versus direct sales.
func MarketplaceAnalysis(col string) Check {
	return Check{Name: "marketplace_analysis", Class: ClassInfo, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, col); err != nil {
			return nil, err
		}
		marketplace := 0
		for i := 0; i < t.NumRows(); i++ {
			if !t.Value(i, col).IsMissing() {
				marketplace++
			}
		}
		out := dataset.New([]string{"channel", "rows"})
		out.AppendRow(dataset.Row{
			"channel": dataset.String("marketplace"),
			"rows":    dataset.Number(float64(marketplace)),
		})
		out.AppendRow(dataset.Row{
			"channel": dataset.String("direct"),
			"rows":    dataset.Number(float64(t.NumRows() - marketplace)),
		})
		return out, nil
	}}
}

// DuplicatedKeys reports rows whose combination of key columns occurs more
// than once in the dataset.
func DuplicatedKeys(name string, cols ...string) Check {
	return Check{Name: name, Class: ClassConsistency, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, cols...); err != nil {
			return nil, err
		}
		key := func(r dataset.Row) string {
			parts := make([]string, len(cols))
			for i, c := range cols {
				parts[i] = r[c].Display()
			}
			return strings.Join(parts, "\x1f")
		}
		counts := make(map[string]int)
		for i := 0; i < t.NumRows(); i++ {
			counts[key(t.Row(i))]++
		}
		sample := t.Filter(func(r dataset.Row) bool { return counts[key(r)] > 1 })
		return sample, nil
	}}
}

// NullRows reports rows whose named column is missing.
func NullRows(name, col string) Check {
	return Check{Name: name, Class: ClassCompleteness, Fn: func(t *dataset.Table) (*dataset.Table, error) {
		if err := requireColumns(t, col); err != nil {
			return nil, err
		}
		sample := t.Filter(func(r dataset.Row) bool { return r[col].IsMissing() })
		return sample, nil
	}}
}
