/*
breakdown.go - Band-merged payment breakdown

PURPOSE:
  Folds the raw slice sequence from the segmenter into the reconciled
  result: per-band entries (slices sharing a band merge into one, even
  when non-contiguous) plus grand totals.

TOTALS:
  TotalHours and TotalPayment are summed over the raw slices, not over
  the merged entries. The merged entries are a derived, display-facing
  view over the same numbers; both sums reconcile exactly because all
  arithmetic is decimal.

SEE ALSO:
  - segment.go: Produces the raw slices
*/
package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// BREAKDOWN
// =============================================================================

type Breakdown struct {
	TotalHours   decimal.Decimal
	TotalPayment decimal.Decimal
	Segments     []Segment // one entry per traversed band
}

// MergeSegments folds same-band slices together, preserving
// first-appearance order. Merging an already-merged sequence is a
// fixed point.
func MergeSegments(slices []Segment) []Segment {
	var merged []Segment
	index := make(map[Band]int)

	for _, s := range slices {
		if i, ok := index[s.Band]; ok {
			merged[i].Hours = merged[i].Hours.Add(s.Hours)
			merged[i].Payment = merged[i].Payment.Add(s.Payment)
			continue
		}
		index[s.Band] = len(merged)
		merged = append(merged, s)
	}
	return merged
}

// Summarize builds the full breakdown from raw slices.
func Summarize(slices []Segment) Breakdown {
	totalHours := decimal.Zero
	totalPayment := decimal.Zero
	for _, s := range slices {
		totalHours = totalHours.Add(s.Hours)
		totalPayment = totalPayment.Add(s.Payment)
	}

	return Breakdown{
		TotalHours:   totalHours,
		TotalPayment: totalPayment,
		Segments:     MergeSegments(slices),
	}
}

// Calculate is the payment entry point: parse both clock strings
// strictly, slice the shift, and summarize. Malformed clock strings
// fail fast with ErrInvalidClock.
func Calculate(startTime, endTime string, rates RateTable, fallback decimal.Decimal) (Breakdown, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return Breakdown{}, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return Breakdown{}, err
	}
	return Summarize(SliceShift(start, end, rates, fallback)), nil
}
