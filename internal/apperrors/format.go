package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Format renders an error for terminal output: category heading, message,
// and remediation bullets when the error carries them. Plain errors fall
// back to a bare "Error: ..." line.
func Format(err error, color bool) string {
	var cli *CLIError
	if !errors.As(err, &cli) {
		return fmt.Sprintf("Error: %v", err)
	}

	heading := cli.Category.String()
	if color {
		heading = "\033[31m" + heading + "\033[0m"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", heading, cli.Message)
	for _, step := range cli.Remediation {
		fmt.Fprintf(&b, "\n  → %s", step)
	}
	return b.String()
}
