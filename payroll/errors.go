/*
errors.go - Error types for the payroll package

PURPOSE:
  All error types in one place. The rate resolver never fails (absence
  of data degrades to the fallback rate), so the only failure surface
  here is clock-string parsing at the boundary.

USAGE:
  Callers classify with errors.Is:

    if errors.Is(err, payroll.ErrInvalidClock) {
        // 400, not 500
    }

SEE ALSO:
  - clock.go: ParseClock, the producer of these errors
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidClock is returned when a time string is not a
	// well-formed HH:MM value in range.
	ErrInvalidClock = errors.New("invalid clock string")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ClockParseError reports why a particular input failed to parse.
type ClockParseError struct {
	Input  string
	Reason string
}

func (e *ClockParseError) Error() string {
	return fmt.Sprintf("invalid clock string %q: %s", e.Input, e.Reason)
}

func (e *ClockParseError) Unwrap() error {
	return ErrInvalidClock
}
