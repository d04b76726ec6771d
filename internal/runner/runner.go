// Package runner executes an ordered check battery against one canonical
// table and aggregates the outcomes. Failure isolation is per check: a check
// that errors or panics is recorded and the sequence continues, so a single
// missing column never blanks out the rest of the battery.
package runner

import (
	"fmt"
	"sort"

	"github.com/quintile-data/edive/internal/checks"
	"github.com/quintile-data/edive/internal/dataset"
)

// Record is the outcome of one registered check. Exactly one record exists
// per check, keyed by the check's position in its registered list; Name is
// the durable identity, Index the presentation order.
type Record struct {
	Index       int
	Name        string
	Occurrences int
	Sample      *dataset.Table
	Err         string
	Class       checks.Classification
}

// Failed reports whether the check produced an error record.
func (r Record) Failed() bool { return r.Class == checks.ClassError }

// Aggregate is the complete, index-ordered result of one run. It is the sole
// handoff artifact to the report renderer and is not modified after Run
// returns.
type Aggregate struct {
	records []Record
}

// Records returns all records in index order.
func (a *Aggregate) Records() []Record { return a.records }

// Len returns the number of records, which always equals the number of
// registered checks.
func (a *Aggregate) Len() int { return len(a.records) }

// ByName returns the record for a check name.
func (a *Aggregate) ByName(name string) (Record, bool) {
	for _, r := range a.records {
		if r.Name == name {
			return r, true
		}
	}
	return Record{}, false
}

// ErrorCount returns how many checks failed.
func (a *Aggregate) ErrorCount() int {
	n := 0
	for _, r := range a.records {
		if r.Failed() {
			n++
		}
	}
	return n
}

// Progress is invoked before each check runs, for display purposes only.
type Progress func(index, total int, name string)

// Run executes every check strictly in list order against the same table
// instance and returns the frozen aggregate. On success a check's record
// carries its sample and its sample's row count; on failure it carries the
// full table's row count, the error text, and the Error classification.
func Run(t *dataset.Table, list []checks.Check, progress Progress) *Aggregate {
	records := make([]Record, 0, len(list))
	for i, c := range list {
		if progress != nil {
			progress(i, len(list), c.Name)
		}
		sample, err := runOne(t, c)
		if err != nil {
			records = append(records, Record{
				Index:       i,
				Name:        c.Name,
				Occurrences: t.NumRows(),
				Err:         err.Error(),
				Class:       checks.ClassError,
			})
			continue
		}
		records = append(records, Record{
			Index:       i,
			Name:        c.Name,
			Occurrences: sample.NumRows(),
			Sample:      sample,
			Class:       c.Class,
		})
	}

	// Insertion order already matches, but out-of-order deposit is tolerated
	// and corrected here before the aggregate is frozen.
	sort.SliceStable(records, func(a, b int) bool { return records[a].Index < records[b].Index })
	return &Aggregate{records: records}
}

// runOne invokes a single check, converting a panic into an ordinary error
// so the battery keeps going.
func runOne(t *dataset.Table, c checks.Check) (sample *dataset.Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("check panicked: %v", r)
		}
	}()
	sample, err = c.Fn(t)
	if err == nil && sample == nil {
		sample = t.Head(0)
	}
	return sample, err
}
