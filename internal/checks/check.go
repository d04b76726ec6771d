// Package checks defines the named data-quality checks and the ordered
// batteries registered per source type. Every check is an independent,
// synchronous function of the canonical table: it never mutates the shared
// table and derives private copies for any transformed view, so a later check
// in the same run observes exactly the data an earlier one did.
package checks

import (
	"fmt"

	"github.com/quintile-data/edive/internal/dataset"
)

// Classification labels the quality dimension a check speaks to. The
// downstream report uses it for presentation only.
type Classification string

const (
	ClassError        Classification = "Error"
	ClassConsistency  Classification = "Consistency"
	ClassConformity   Classification = "Conformity"
	ClassCompleteness Classification = "Completeness"
	ClassCompliance   Classification = "Compliance"
	ClassInfo         Classification = "Info"
)

// Func runs one check against the table and returns a sample table
// illustrating the finding, or an error when the check cannot run.
type Func func(t *dataset.Table) (*dataset.Table, error)

// Check is one registered data-quality test. Name is the stable identity
// surfaced in reports; checks are independent and never read each other's
// results.
type Check struct {
	Name  string
	Class Classification
	Fn    Func
}

// errColumnMissing builds the failure for a check whose input column is not
// part of this export. The runner turns it into a per-check Error record.
func errColumnMissing(name string) error {
	return fmt.Errorf("column %q not present in dataset", name)
}

// requireColumns fails when any named column is absent from the table.
func requireColumns(t *dataset.Table, names ...string) error {
	for _, n := range names {
		if !t.HasColumn(n) {
			return errColumnMissing(n)
		}
	}
	return nil
}
