package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_CLIError(t *testing.T) {
	t.Parallel()

	err := NewConfigError("output_dir is required",
		"set output_dir in the config file",
		"or export EDIVE_OUTPUT_DIR")

	got := Format(err, false)
	assert.Equal(t,
		"Configuration Error: output_dir is required\n  → set output_dir in the config file\n  → or export EDIVE_OUTPUT_DIR",
		got)
}

func TestFormat_WrappedCLIError(t *testing.T) {
	t.Parallel()

	inner := NewArgumentError("file argument missing")
	got := Format(fmt.Errorf("running validate: %w", inner), false)
	assert.Contains(t, got, "Argument Error:")
}

func TestFormat_PlainError(t *testing.T) {
	t.Parallel()

	got := Format(errors.New("disk full"), false)
	assert.Equal(t, "Error: disk full", got)
}

func TestFormat_Color(t *testing.T) {
	t.Parallel()

	got := Format(NewRuntimeError("boom"), true)
	assert.Contains(t, got, "\033[31mRuntime Error\033[0m: boom")
}

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Wrap(nil, Runtime))

	inner := errors.New("read failed")
	wrapped := Wrap(inner, Ingestion, "check the file")
	assert.Equal(t, "read failed", wrapped.Error())
	assert.Equal(t, Ingestion, wrapped.Category)
	assert.ErrorIs(t, wrapped, inner)
}
