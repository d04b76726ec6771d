package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		raw     string
		want    float64
		missing bool
	}{
		"integer":           {raw: "42", want: 42},
		"float":             {raw: "19.90", want: 19.90},
		"negative":          {raw: "-3.5", want: -3.5},
		"whitespace padded": {raw: "  7 ", want: 7},
		"comma decimal":     {raw: "19,90", want: 19.90},
		"empty":             {raw: "", missing: true},
		"blank":             {raw: "   ", missing: true},
		"non numeric":       {raw: "abc", missing: true},
		"mixed":             {raw: "12abc", missing: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			v := ParseNumber(test.raw)
			if test.missing {
				assert.True(t, v.IsMissing(), "expected missing marker, got %v", v)
				return
			}
			f, ok := v.Num()
			require.True(t, ok)
			assert.InDelta(t, test.want, f, 1e-9)
		})
	}
}

func TestParseDatetime(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		raw     string
		want    time.Time
		missing bool
	}{
		"date only":     {raw: "2024-01-01", want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		"datetime":      {raw: "2024-01-01 13:45:00", want: time.Date(2024, 1, 1, 13, 45, 0, 0, time.UTC)},
		"slash br":      {raw: "01/02/2024", want: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		"empty":         {raw: "", missing: true},
		"garbage":       {raw: "not a date", missing: true},
		"partial":       {raw: "2024-13-45", missing: true},
		"numeric noise": {raw: "123456", missing: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			v := ParseDatetime(test.raw)
			if test.missing {
				assert.True(t, v.IsMissing(), "expected missing marker, got %v", v)
				return
			}
			ts, ok := v.Time()
			require.True(t, ok)
			assert.True(t, test.want.Equal(ts), "expected %v, got %v", test.want, ts)
		})
	}
}

func TestValueDisplay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", NA().Display())
	assert.Equal(t, "hello", String("hello").Display())
	assert.Equal(t, "19.9", Number(19.9).Display())
	assert.Equal(t, "2024-01-02", Datetime(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)).Display())
	assert.Equal(t, "2024-01-02 10:30:00", Datetime(time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)).Display())
}
