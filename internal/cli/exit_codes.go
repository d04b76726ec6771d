package cli

// Process exit codes. An unknown schema is a valid outcome (the input simply
// is not one of the known feeds) and exits 0, unlike ingestion failures.
const (
	ExitOK                = 0
	ExitRuntime           = 1
	ExitUsage             = 2
	ExitUnsupportedFormat = 3
	ExitParseFailure      = 4
	ExitConfig            = 5
)
