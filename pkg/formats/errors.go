// Package formats provides parsers for the text asset formats used by the
// viewer: Wavefront OBJ geometry, MTL materials and the scene configuration
// file. Parsers work on io.Reader and never fail on bad content; recoverable
// problems are reported as warnings alongside the result.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"go.uber.org/multierr"
)

// Recoverable content errors. They are never returned as the primary error
// of a parse; they show up wrapped inside the result's Warnings.
var (
	ErrMalformedDirective = errors.New("malformed directive")
	ErrIndexOutOfRange    = errors.New("index out of range")
)

// lineError records a recoverable problem at a 1-based line number.
func lineError(line int, err error, format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s", line, err, fmt.Sprintf(format, args...))
}

// Warnings splits an aggregated warning value into its individual errors.
func Warnings(err error) []error {
	return multierr.Errors(err)
}

// MaxLineSize bounds a single line of any text format. Long trajectory
// point lists and dense face lines can exceed bufio's 64 KiB default.
const MaxLineSize = 16 << 20

// NewLineScanner returns a line scanner that accepts lines up to MaxLineSize.
func NewLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineSize)
	return scanner
}
