package checks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quintile-data/edive/internal/dataset"
)

// run executes a check body and fails the test on a check error.
func run(t *testing.T, c Check, tbl *dataset.Table) *dataset.Table {
	t.Helper()
	sample, err := c.Fn(tbl)
	require.NoError(t, err)
	require.NotNil(t, sample)
	return sample
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return ts
}

func TestColumnsCompleteness(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"a", "b"})
	tbl.AppendRow(dataset.Row{"a": dataset.String("x"), "b": dataset.NA()})
	tbl.AppendRow(dataset.Row{"a": dataset.String("y"), "b": dataset.String("z")})

	sample := run(t, ColumnsCompleteness(), tbl)

	// Fully populated columns are left out.
	require.Equal(t, 1, sample.NumRows())
	assert.Equal(t, "b", sample.Value(0, "column").Str())
	missing, _ := sample.Value(0, "missing").Num()
	assert.Equal(t, 1.0, missing)
	pct, _ := sample.Value(0, "pct_missing").Num()
	assert.Equal(t, 50.0, pct)
}

func TestConformity(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"flag"})
	tbl.AppendRow(dataset.Row{"flag": dataset.String("visa")})
	tbl.AppendRow(dataset.Row{"flag": dataset.String("visa")})
	tbl.AppendRow(dataset.Row{"flag": dataset.String("amex")})
	tbl.AppendRow(dataset.Row{"flag": dataset.NA()})

	sample := run(t, Conformity("cardflag_conformity", "flag"), tbl)

	require.Equal(t, 3, sample.NumRows())
	assert.Equal(t, "visa", sample.Value(0, "flag").Str(), "most frequent first")
	n, _ := sample.Value(0, "count").Num()
	assert.Equal(t, 2.0, n)

	got := []string{sample.Value(1, "flag").Str(), sample.Value(2, "flag").Str()}
	assert.ElementsMatch(t, []string{"amex", "<missing>"}, got)
}

func TestConformity_MissingColumn(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"other"})
	_, err := Conformity("cardflag_conformity", "flag").Fn(tbl)
	assert.Error(t, err)
}

func TestSalesValidation(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"id", "total"})
	tbl.AppendRow(dataset.Row{"id": dataset.String("t1"), "total": dataset.Number(10)})
	tbl.AppendRow(dataset.Row{"id": dataset.String("t2"), "total": dataset.Number(0)})
	tbl.AppendRow(dataset.Row{"id": dataset.String("t3"), "total": dataset.NA()})
	tbl.AppendRow(dataset.Row{"id": dataset.NA(), "total": dataset.NA()})

	sample := run(t, SalesValidation("sales_validation", "id", "total"), tbl)

	require.Equal(t, 2, sample.NumRows())
	assert.Equal(t, "t2", sample.Value(0, "id").Str())
	assert.Equal(t, "t3", sample.Value(1, "id").Str())
}

func TestPaymentTypeValidation(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"pt"})
	tbl.AppendRow(dataset.Row{"pt": dataset.Number(1)})
	tbl.AppendRow(dataset.Row{"pt": dataset.Number(9)})
	tbl.AppendRow(dataset.Row{"pt": dataset.NA()})

	sample := run(t, PaymentTypeValidation("paymenttype_validation", "pt", []float64{1, 2, 3}), tbl)

	require.Equal(t, 1, sample.NumRows())
	got, _ := sample.Value(0, "pt").Num()
	assert.Equal(t, 9.0, got)
}

func TestTotalspentMatchTotal(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"total", "value", "qty"})
	// 2 * 5 = 10, matches.
	tbl.AppendRow(dataset.Row{"total": dataset.Number(10), "value": dataset.Number(5), "qty": dataset.Number(2)})
	// 2 * 5 = 10, recorded 12, off by more than a cent.
	tbl.AppendRow(dataset.Row{"total": dataset.Number(12), "value": dataset.Number(5), "qty": dataset.Number(2)})
	// Pipe-joined cart: 3*1 + 2*2 = 7, matches.
	tbl.AppendRow(dataset.Row{"total": dataset.Number(7), "value": dataset.String("3|2"), "qty": dataset.String("1|2")})

	sample := run(t, TotalspentMatchTotal("totalspent_match_total", "total", "value", "qty"), tbl)

	require.Equal(t, 1, sample.NumRows())
	got, _ := sample.Value(0, "total").Num()
	assert.Equal(t, 12.0, got)
}

func TestZipcodeLength(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"zip"})
	tbl.AppendRow(dataset.Row{"zip": dataset.String("01310-100")})
	tbl.AppendRow(dataset.Row{"zip": dataset.String("12345")})
	tbl.AppendRow(dataset.Row{"zip": dataset.NA()})

	sample := run(t, ZipcodeLength("zipcode_length", "zip", 8), tbl)

	require.Equal(t, 1, sample.NumRows())
	assert.Equal(t, "12345", sample.Value(0, "zip").Str())
}

func TestDuplicatedIDs(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"id"})
	tbl.AppendRow(dataset.Row{"id": dataset.String("a")})
	tbl.AppendRow(dataset.Row{"id": dataset.String("b")})
	tbl.AppendRow(dataset.Row{"id": dataset.String("a")})
	tbl.AppendRow(dataset.Row{"id": dataset.NA()})
	tbl.AppendRow(dataset.Row{"id": dataset.NA()})

	sample := run(t, DuplicatedIDs("duplicated_ids", "id"), tbl)

	// Missing ids never count as duplicates of each other.
	require.Equal(t, 2, sample.NumRows())
	assert.Equal(t, "a", sample.Value(0, "id").Str())
	assert.Equal(t, "a", sample.Value(1, "id").Str())
}

func TestDuplicatedAll(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"a", "b"})
	tbl.AppendRow(dataset.Row{"a": dataset.String("1"), "b": dataset.String("x")})
	tbl.AppendRow(dataset.Row{"a": dataset.String("1"), "b": dataset.String("y")})
	tbl.AppendRow(dataset.Row{"a": dataset.String("1"), "b": dataset.String("x")})

	sample := run(t, DuplicatedAll(), tbl)
	assert.Equal(t, 2, sample.NumRows())
}

func TestSizeComparison(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"names", "values"})
	tbl.AppendRow(dataset.Row{"names": dataset.String("a|b"), "values": dataset.String("1|2")})
	tbl.AppendRow(dataset.Row{"names": dataset.String("a|b"), "values": dataset.String("1")})
	tbl.AppendRow(dataset.Row{"names": dataset.String("a"), "values": dataset.NA()})

	sample := run(t, SizeComparison("size_comparison", "names", "values"), tbl)

	require.Equal(t, 1, sample.NumRows())
	assert.Equal(t, "1", sample.Value(0, "values").Str())
}

func TestSalesValidationSplit(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"value"})
	tbl.AppendRow(dataset.Row{"value": dataset.String("1.5|2.0")})
	tbl.AppendRow(dataset.Row{"value": dataset.String("1.5|abc")})
	tbl.AppendRow(dataset.Row{"value": dataset.NA()})

	sample := run(t, SalesValidationSplit("sales_validation_split", "value"), tbl)

	require.Equal(t, 1, sample.NumRows())
	assert.Equal(t, "1.5|abc", sample.Value(0, "value").Str())
}

func TestRepeatedProductName(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"names"})
	tbl.AppendRow(dataset.Row{"names": dataset.String("tv|radio")})
	tbl.AppendRow(dataset.Row{"names": dataset.String("tv|tv")})

	sample := run(t, RepeatedProductName("repeated_productname", "names"), tbl)

	require.Equal(t, 1, sample.NumRows())
	assert.Equal(t, "tv|tv", sample.Value(0, "names").Str())
}

func TestWrongColumnsWithPipe(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"cart", "city"})
	tbl.AppendRow(dataset.Row{"cart": dataset.String("a|b"), "city": dataset.String("rio|sp")})
	tbl.AppendRow(dataset.Row{"cart": dataset.String("c"), "city": dataset.String("bh")})

	sample := run(t, WrongColumnsWithPipe("cart"), tbl)

	require.Equal(t, 1, sample.NumRows())
	assert.Equal(t, "city", sample.Value(0, "column").Str())
	n, _ := sample.Value(0, "cells_with_pipe").Num()
	assert.Equal(t, 1.0, n)
}

func TestTotalRowsAndColumns(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"a", "b", "c"})
	tbl.AppendRow(dataset.Row{"a": dataset.String("1")})
	tbl.AppendRow(dataset.Row{"a": dataset.String("2")})

	rows := run(t, TotalRows(), tbl)
	n, _ := rows.Value(0, "total_rows").Num()
	assert.Equal(t, 2.0, n)

	cols := run(t, TotalColumns(), tbl)
	n, _ = cols.Value(0, "total_columns").Num()
	assert.Equal(t, 3.0, n)
}

func TestFirstLastMissingDays(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"dt"})
	for _, d := range []string{"2024-03-01", "2024-03-02", "2024-03-05"} {
		tbl.AppendRow(dataset.Row{"dt": dataset.Datetime(day(t, d))})
	}
	tbl.AppendRow(dataset.Row{"dt": dataset.NA()})

	first := run(t, FirstDay("dt"), tbl)
	ts, ok := first.Value(0, "first_day").Time()
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", ts.Format("2006-01-02"))

	last := run(t, LastDay("dt"), tbl)
	ts, ok = last.Value(0, "last_day").Time()
	require.True(t, ok)
	assert.Equal(t, "2024-03-05", ts.Format("2006-01-02"))

	gaps := run(t, MissingDays("dt"), tbl)
	require.Equal(t, 2, gaps.NumRows())
	d0, _ := gaps.Value(0, "missing_day").Time()
	d1, _ := gaps.Value(1, "missing_day").Time()
	assert.Equal(t, "2024-03-03", d0.Format("2006-01-02"))
	assert.Equal(t, "2024-03-04", d1.Format("2006-01-02"))
}

func TestThresholdAndOutlier(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"v"})
	for _, f := range []float64{10, 11, 12, 13, 14, 1000} {
		tbl.AppendRow(dataset.Row{"v": dataset.Number(f)})
	}

	over := run(t, Threshold("totalspent_threshold", "v", 100), tbl)
	require.Equal(t, 1, over.NumRows())

	out := run(t, Outlier("totalspent_outlier", "v"), tbl)
	require.Equal(t, 1, out.NumRows())
	got, _ := out.Value(0, "v").Num()
	assert.Equal(t, 1000.0, got)
}

func TestOutlier_TooFewValues(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"v"})
	tbl.AppendRow(dataset.Row{"v": dataset.Number(1)})
	tbl.AppendRow(dataset.Row{"v": dataset.Number(100)})

	sample := run(t, Outlier("totalspent_outlier", "v"), tbl)
	assert.Equal(t, 0, sample.NumRows())
}

func TestUndefinedCount(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"a", "b"})
	tbl.AppendRow(dataset.Row{"a": dataset.String("undefined"), "b": dataset.String("ok")})
	tbl.AppendRow(dataset.Row{"a": dataset.String("Undefined"), "b": dataset.String("ok")})

	sample := run(t, UndefinedCount(), tbl)

	require.Equal(t, 1, sample.NumRows())
	assert.Equal(t, "a", sample.Value(0, "column").Str())
	n, _ := sample.Value(0, "count").Num()
	assert.Equal(t, 2.0, n)
}

func TestMarketplaceAnalysis(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"mkt"})
	tbl.AppendRow(dataset.Row{"mkt": dataset.String("amazon-123")})
	tbl.AppendRow(dataset.Row{"mkt": dataset.NA()})
	tbl.AppendRow(dataset.Row{"mkt": dataset.NA()})

	sample := run(t, MarketplaceAnalysis("mkt"), tbl)

	require.Equal(t, 2, sample.NumRows())
	m, _ := sample.Value(0, "rows").Num()
	d, _ := sample.Value(1, "rows").Num()
	assert.Equal(t, 1.0, m)
	assert.Equal(t, 2.0, d)
}

func TestDuplicatedKeys(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"asin", "date"})
	tbl.AppendRow(dataset.Row{"asin": dataset.String("B1"), "date": dataset.String("d1")})
	tbl.AppendRow(dataset.Row{"asin": dataset.String("B1"), "date": dataset.String("d2")})
	tbl.AppendRow(dataset.Row{"asin": dataset.String("B1"), "date": dataset.String("d1")})

	sample := run(t, DuplicatedKeys("duplicated_asin_date", "asin", "date"), tbl)
	assert.Equal(t, 2, sample.NumRows())
}

func TestNullRows(t *testing.T) {
	t.Parallel()

	tbl := dataset.New([]string{"store"})
	tbl.AppendRow(dataset.Row{"store": dataset.String("s1")})
	tbl.AppendRow(dataset.Row{"store": dataset.NA()})

	sample := run(t, NullRows("storeid_null", "store"), tbl)
	assert.Equal(t, 1, sample.NumRows())
}
