/*
segment.go - Interval segmentation across pay-band boundaries

PURPOSE:
  Splits an arbitrary shift interval into homogeneous sub-intervals,
  one per traversed pay band, including shifts that cross midnight or
  span multiple full days.

ALGORITHM:
  1. Normalize to an extended minute timeline: if end is clock-earlier
     than start, the end is on the following day (+24h). start == end
     degenerates to an empty result.
  2. Walk forward: band at the current position (mod 24h), next band
     boundary strictly after it, clipped to the shift end.
  3. Emit one slice per step: fractional hours, resolved rate, payment.
  4. Advance to the boundary; repeat until the end is reached.

  Shifts longer than 24h fall out of the same walk: banding only needs
  the position mod 24h, distance math uses the absolute position.

PRECISION:
  All quantities are decimal.Decimal. Minutes contribute minutes/60, so
  totals reconcile exactly with per-slice sums.

SEE ALSO:
  - bands.go: bandAtMinute, nextBoundary, RateForBand
  - breakdown.go: Folds slices into the band-merged breakdown
*/
package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// SEGMENT - One homogeneous slice of a shift
// =============================================================================

type Segment struct {
	Band    Band
	Hours   decimal.Decimal
	Rate    decimal.Decimal
	Payment decimal.Decimal
}

var sixty = decimal.NewFromInt(60)

// SliceShift walks the shift from start to end and returns the raw,
// time-ordered slice sequence (pre-merge). A zero-length shift returns
// nil.
func SliceShift(start, end Clock, rates RateTable, fallback decimal.Decimal) []Segment {
	s := start.MinuteOfDay()
	e := end.MinuteOfDay()
	if s == e {
		return nil
	}
	if e < s {
		e += minutesPerDay // crosses midnight
	}
	return SliceRange(s, e, rates, fallback)
}

// SliceRange walks an explicit extended-timeline range in minutes,
// where end may exceed 24h by any number of full wraps. SliceShift is
// the common entry point; this one exists for multi-day intervals.
func SliceRange(s, e int, rates RateTable, fallback decimal.Decimal) []Segment {
	var slices []Segment
	for pos := s; pos < e; {
		band := bandAtMinute(pos)
		boundary := nextBoundary(pos)
		if boundary > e {
			boundary = e
		}

		hours := decimal.NewFromInt(int64(boundary - pos)).Div(sixty)
		rate := RateForBand(band, rates, fallback)
		slices = append(slices, Segment{
			Band:    band,
			Hours:   hours,
			Rate:    rate,
			Payment: hours.Mul(rate),
		})

		pos = boundary
	}
	return slices
}
