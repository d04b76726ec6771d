package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quintile-data/edive/internal/apperrors"
	"github.com/quintile-data/edive/internal/ingest"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"unsupported format": {err: &ingest.UnsupportedFormatError{Ext: ".pdf"}, want: ExitUnsupportedFormat},
		"parse failure":      {err: &ingest.ParseError{Path: "a.csv", Err: errors.New("no header")}, want: ExitParseFailure},
		"wrapped parse":      {err: apperrors.Wrap(&ingest.ParseError{Path: "a.csv", Err: errors.New("bad")}, apperrors.Ingestion), want: ExitParseFailure},
		"argument":           {err: apperrors.NewArgumentError("missing file"), want: ExitUsage},
		"configuration":      {err: apperrors.NewConfigError("bad config"), want: ExitConfig},
		"runtime":            {err: apperrors.NewRuntimeError("boom"), want: ExitRuntime},
		"plain error":        {err: errors.New("boom"), want: ExitRuntime},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, exitCode(tc.err))
		})
	}
}

func TestRequireFileArg(t *testing.T) {
	t.Parallel()

	err := requireFileArg(validateCmd, nil)
	var cliErr *apperrors.CLIError
	assert.ErrorAs(t, err, &cliErr)
	assert.Equal(t, ExitUsage, exitCode(err))

	err = requireFileArg(validateCmd, []string{"a.csv", "b.csv"})
	assert.ErrorAs(t, err, &cliErr)
	assert.Equal(t, ExitUsage, exitCode(err))

	assert.NoError(t, requireFileArg(validateCmd, []string{"a.csv"}))
}

func TestExecute_MissingArgumentIsUsageError(t *testing.T) {
	rootCmd.SetArgs([]string{"validate"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	assert.Equal(t, ExitUsage, exitCode(err))
}

func TestDatasetName(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path string
		want string
	}{
		"csv":       {path: "/data/store_export.csv", want: "store_export"},
		"txt000":    {path: "feed.txt000", want: "feed"},
		"no ext":    {path: "/data/export", want: "export"},
		"dotted":    {path: "store.v2.csv", want: "store.v2"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, datasetName(tc.path))
		})
	}
}
