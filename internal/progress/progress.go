// Package progress renders run progress for the check battery: a spinner on
// interactive terminals, plain line output otherwise.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal can render.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// symbols holds the marks and spinner charset for the detected terminal.
type symbols struct {
	checkmark  string
	failure    string
	spinnerSet int
}

// DetectTerminalCapabilities inspects stdout and the environment.
func DetectTerminalCapabilities() TerminalCapabilities {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("EDIVE_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

func selectSymbols(caps TerminalCapabilities) symbols {
	if caps.SupportsUnicode {
		return symbols{checkmark: "✓", failure: "✗", spinnerSet: 14}
	}
	return symbols{checkmark: "[OK]", failure: "[FAIL]", spinnerSet: 9}
}

// Display drives the check-battery progress output.
type Display struct {
	caps    TerminalCapabilities
	spinner *spinner.Spinner
	symbols symbols
}

// NewDisplay creates a display for the given terminal capabilities.
func NewDisplay(caps TerminalCapabilities) *Display {
	return &Display{caps: caps, symbols: selectSymbols(caps)}
}

// Check updates the display before check index (zero-based) of total runs.
func (d *Display) Check(index, total int, name string) {
	msg := fmt.Sprintf("[%d/%d] Running %s", index+1, total, name)
	if !d.caps.IsTTY {
		fmt.Println(msg)
		return
	}
	if d.spinner == nil {
		d.spinner = spinner.New(spinner.CharSets[d.symbols.spinnerSet], 100*time.Millisecond)
		d.spinner.Writer = os.Stderr
		d.spinner.Start()
	}
	d.spinner.Suffix = " " + msg
}

// Finish stops the spinner and prints the run summary line.
func (d *Display) Finish(total, failed int) {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
	if failed > 0 {
		fmt.Printf("%s %d/%d checks ran, %d recorded as Error\n",
			d.mark(d.symbols.failure, "\033[31m"), total, total, failed)
		return
	}
	fmt.Printf("%s %d checks complete\n", d.mark(d.symbols.checkmark, "\033[32m"), total)
}

// mark wraps a symbol in a color escape when the terminal supports it.
func (d *Display) mark(sym, color string) string {
	if d.caps.SupportsColor {
		return color + sym + "\033[0m"
	}
	return sym
}
