/*
bands.go - Pay bands and rate resolution

PURPOSE:
  Maps a point on the clock to a named pay band, and a band plus a rate
  table to an hourly rate. This is the only place band boundaries and
  rate-aliasing policy live.

BANDS:
  morning  [06:00, 09:00)
  day      [09:00, 17:00)
  evening  [17:00, 22:00)
  night    [22:00, 06:00)   wraps midnight

  Intervals are half-open: at a boundary hour the later band wins.
  Night is the default for any hour the other three do not claim, which
  makes the band set total without wrap arithmetic at call sites.

RATE RESOLUTION:
  table[band] if present; evening resolves to the day entry (business
  policy as observed - do not change without product confirmation); an
  absent entry or absent table degrades to the fallback rate. Rate
  resolution never fails.

SEE ALSO:
  - segment.go: Walks band boundaries over a shift interval
*/
package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// PAY BAND
// =============================================================================

type Band string

const (
	BandMorning Band = "morning"
	BandDay     Band = "day"
	BandEvening Band = "evening"
	BandNight   Band = "night"
)

// Bands lists all bands in clock order starting from morning.
var Bands = []Band{BandMorning, BandDay, BandEvening, BandNight}

// Band boundaries as minutes since 00:00. endOfDay is where each
// daytime band hands over to the next; night hands over at startMorning
// the following morning.
const (
	startMorning  = 6 * 60  // 06:00
	startDay      = 9 * 60  // 09:00
	startEvening  = 17 * 60 // 17:00
	startNight    = 22 * 60 // 22:00
	minutesPerDay = 24 * 60
)

// BandForClock returns the pay band containing the given wall-clock
// position (half-open intervals, later band wins at a boundary).
func BandForClock(c Clock) Band {
	return bandAtMinute(c.MinuteOfDay())
}

// bandAtMinute looks up the band for a minute-of-day position. The
// position is taken mod 24h so extended-timeline callers can pass
// values past midnight.
func bandAtMinute(m int) Band {
	m = ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
	switch {
	case m >= startMorning && m < startDay:
		return BandMorning
	case m >= startDay && m < startEvening:
		return BandDay
	case m >= startEvening && m < startNight:
		return BandEvening
	default:
		return BandNight
	}
}

// nextBoundary returns the first band boundary strictly after pos,
// where pos is on the extended timeline (minutes, possibly >= 24h).
// Each band has a fixed hand-over point; the result is the next
// occurrence of that point after pos.
func nextBoundary(pos int) int {
	var target int
	switch bandAtMinute(pos) {
	case BandMorning:
		target = startDay
	case BandDay:
		target = startEvening
	case BandEvening:
		target = startNight
	default:
		target = startMorning
	}

	boundary := (pos/minutesPerDay)*minutesPerDay + target
	if boundary <= pos {
		boundary += minutesPerDay
	}
	return boundary
}

// =============================================================================
// RATE TABLE
// =============================================================================

// RateTable maps band names to hourly rates. Bands absent from the
// table fall back to the caller-supplied default rate.
type RateTable map[Band]decimal.Decimal

// NewRateTable builds a RateTable from plain float rates keyed by band
// name (DTO boundary helper; internal arithmetic stays in decimal).
func NewRateTable(rates map[string]float64) RateTable {
	if rates == nil {
		return nil
	}
	table := make(RateTable, len(rates))
	for name, rate := range rates {
		table[Band(name)] = decimal.NewFromFloat(rate)
	}
	return table
}

// ValidBand reports whether name is one of the defined bands.
func ValidBand(name Band) bool {
	for _, b := range Bands {
		if b == name {
			return true
		}
	}
	return false
}

// RateForBand resolves the hourly rate for a band. Evening resolves to
// the day entry when it has none of its own. Never fails: missing data
// degrades to fallback.
func RateForBand(band Band, table RateTable, fallback decimal.Decimal) decimal.Decimal {
	if table == nil {
		return fallback
	}
	if rate, ok := table[band]; ok {
		return rate
	}
	if band == BandEvening {
		if rate, ok := table[BandDay]; ok {
			return rate
		}
	}
	return fallback
}
