/*
clock.go - Wall-clock values for shift boundaries

PURPOSE:
  Defines Clock, the hour/minute value type used for shift start and end
  times, plus strict parsing of "HH:MM" strings.

PARSING:
  ParseClock rejects anything that is not a well-formed 24-hour clock
  string. Malformed input fails fast with ErrInvalidClock instead of
  propagating undefined arithmetic into the segmenter.

EXTENDED TIMELINE:
  A Clock is always a wall-clock value (0-23h). Shifts that cross
  midnight are handled by the segmenter on an extended minute timeline
  (see segment.go), never by out-of-range Clock values.

SEE ALSO:
  - segment.go: Uses Clock for the interval walk
  - errors.go: ErrInvalidClock and ClockParseError
*/
package payroll

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// CLOCK - Hour/minute pair on a 24-hour clock
// =============================================================================

type Clock struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// NewClock creates a Clock without validation. Use ParseClock for
// untrusted input.
func NewClock(hour, minute int) Clock {
	return Clock{Hour: hour, Minute: minute}
}

// ParseClock parses a strict "HH:MM" (or "H:MM") string.
// Returns an error wrapping ErrInvalidClock on any malformed or
// out-of-range input.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return Clock{}, &ClockParseError{Input: s, Reason: "missing ':' separator"}
	}

	hour, err := strconv.Atoi(hh)
	if err != nil {
		return Clock{}, &ClockParseError{Input: s, Reason: "hour is not numeric"}
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 {
		return Clock{}, &ClockParseError{Input: s, Reason: "minute is not a two-digit number"}
	}

	if hour < 0 || hour > 23 {
		return Clock{}, &ClockParseError{Input: s, Reason: fmt.Sprintf("hour %d out of range [0,23]", hour)}
	}
	if minute < 0 || minute > 59 {
		return Clock{}, &ClockParseError{Input: s, Reason: fmt.Sprintf("minute %d out of range [0,59]", minute)}
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

// MinuteOfDay returns the clock position as minutes since 00:00.
func (c Clock) MinuteOfDay() int { return c.Hour*60 + c.Minute }

// Comparison
func (c Clock) Before(other Clock) bool { return c.MinuteOfDay() < other.MinuteOfDay() }
func (c Clock) Equal(other Clock) bool  { return c.MinuteOfDay() == other.MinuteOfDay() }
func (c Clock) After(other Clock) bool  { return c.MinuteOfDay() > other.MinuteOfDay() }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
