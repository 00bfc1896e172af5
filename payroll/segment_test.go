package payroll_test

import (
	"testing"

	"github.com/nohataku/Asmito-sub001/payroll"
	"github.com/shopspring/decimal"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func mustCalculate(t *testing.T, start, end string, rates payroll.RateTable, fallback int64) payroll.Breakdown {
	t.Helper()
	b, err := payroll.Calculate(start, end, rates, d(fallback))
	if err != nil {
		t.Fatalf("Calculate(%s, %s): unexpected error: %v", start, end, err)
	}
	return b
}

func assertSegment(t *testing.T, s payroll.Segment, band payroll.Band, hours, payment int64) {
	t.Helper()
	if s.Band != band {
		t.Errorf("band = %s, want %s", s.Band, band)
	}
	if !s.Hours.Equal(d(hours)) {
		t.Errorf("%s hours = %s, want %d", band, s.Hours, hours)
	}
	if !s.Payment.Equal(d(payment)) {
		t.Errorf("%s payment = %s, want %d", band, s.Payment, payment)
	}
}

// =============================================================================
// SINGLE-DAY SHIFTS
// =============================================================================

func TestCalculate_DayShift_SingleSegment(t *testing.T) {
	// GIVEN: A 09:00-17:00 shift with only a fallback rate of 1000
	// WHEN: Calculating the payment
	// THEN: One day segment, 8 hours, payment 8000
	b := mustCalculate(t, "09:00", "17:00", nil, 1000)

	if len(b.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(b.Segments))
	}
	assertSegment(t, b.Segments[0], payroll.BandDay, 8, 8000)
	if !b.TotalHours.Equal(d(8)) {
		t.Errorf("total hours = %s, want 8", b.TotalHours)
	}
	if !b.TotalPayment.Equal(d(8000)) {
		t.Errorf("total payment = %s, want 8000", b.TotalPayment)
	}
}

func TestCalculate_DayIntoEvening_EveningReusesDayRate(t *testing.T) {
	// GIVEN: A 09:00-18:00 shift with day rate 1000
	// WHEN: Calculating across the 17:00 boundary
	// THEN: Day 8h at 1000 and evening 1h at the day rate
	rates := payroll.RateTable{payroll.BandDay: d(1000)}
	b := mustCalculate(t, "09:00", "18:00", rates, 900)

	if len(b.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(b.Segments))
	}
	assertSegment(t, b.Segments[0], payroll.BandDay, 8, 8000)
	assertSegment(t, b.Segments[1], payroll.BandEvening, 1, 1000)
	if !b.TotalPayment.Equal(d(9000)) {
		t.Errorf("total payment = %s, want 9000", b.TotalPayment)
	}
}

func TestCalculate_FractionalHours(t *testing.T) {
	// GIVEN: A 09:15-10:45 shift at rate 1000
	// THEN: 1.5 hours, payment 1500
	b := mustCalculate(t, "09:15", "10:45", nil, 1000)

	want := decimal.NewFromFloat(1.5)
	if !b.TotalHours.Equal(want) {
		t.Errorf("total hours = %s, want 1.5", b.TotalHours)
	}
	if !b.TotalPayment.Equal(d(1500)) {
		t.Errorf("total payment = %s, want 1500", b.TotalPayment)
	}
}

// =============================================================================
// MIDNIGHT-CROSSING SHIFTS
// =============================================================================

func TestCalculate_NightShift_CrossesMidnight(t *testing.T) {
	// GIVEN: A 22:00-06:00 shift with night rate 1250
	// WHEN: The end is clock-earlier than the start
	// THEN: Treated as next-day end: one night segment, 8h, 10000
	rates := payroll.RateTable{payroll.BandNight: d(1250)}
	b := mustCalculate(t, "22:00", "06:00", rates, 1000)

	if len(b.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(b.Segments))
	}
	assertSegment(t, b.Segments[0], payroll.BandNight, 8, 10000)
	if !b.TotalPayment.Equal(d(10000)) {
		t.Errorf("total payment = %s, want 10000", b.TotalPayment)
	}
}

func TestCalculate_EveningThroughMorning(t *testing.T) {
	// GIVEN: A 20:00-07:00 shift, rates day 1000 / night 1250,
	//        fallback 1000
	// THEN: Evening 2h at the day rate, night 8h, morning 1h at the
	//       fallback; 11 hours in total
	rates := payroll.RateTable{
		payroll.BandDay:   d(1000),
		payroll.BandNight: d(1250),
	}
	b := mustCalculate(t, "20:00", "07:00", rates, 1000)

	if len(b.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d: %+v", len(b.Segments), b.Segments)
	}
	assertSegment(t, b.Segments[0], payroll.BandEvening, 2, 2000)
	assertSegment(t, b.Segments[1], payroll.BandNight, 8, 10000)
	assertSegment(t, b.Segments[2], payroll.BandMorning, 1, 1000)

	if !b.TotalHours.Equal(d(11)) {
		t.Errorf("total hours = %s, want 11", b.TotalHours)
	}
	if !b.TotalPayment.Equal(d(13000)) {
		t.Errorf("total payment = %s, want 13000", b.TotalPayment)
	}
}

func TestCalculate_WrapDuration(t *testing.T) {
	// For end <= start the duration must equal (end+24h) - start.
	cases := []struct {
		start, end string
		hours      float64
	}{
		{"23:00", "01:00", 2},
		{"18:00", "02:30", 8.5},
		{"06:00", "06:30", 0.5},
	}

	for _, tc := range cases {
		b := mustCalculate(t, tc.start, tc.end, nil, 1000)
		if !b.TotalHours.Equal(decimal.NewFromFloat(tc.hours)) {
			t.Errorf("%s-%s: total hours = %s, want %v", tc.start, tc.end, b.TotalHours, tc.hours)
		}
	}
}

// =============================================================================
// DEGENERATE AND MULTI-DAY CASES
// =============================================================================

func TestSliceShift_ZeroLength_Empty(t *testing.T) {
	// start == end degenerates to no slices, zero totals.
	slices := payroll.SliceShift(payroll.NewClock(9, 0), payroll.NewClock(9, 0), nil, d(1000))
	if len(slices) != 0 {
		t.Fatalf("expected no slices, got %d", len(slices))
	}

	b := payroll.Summarize(slices)
	if !b.TotalHours.IsZero() || !b.TotalPayment.IsZero() {
		t.Errorf("expected zero totals, got hours=%s payment=%s", b.TotalHours, b.TotalPayment)
	}
}

func TestSliceRange_MultiDayWrap(t *testing.T) {
	// GIVEN: A 48-hour interval starting at 09:00
	// WHEN: Walking the extended timeline across two full wraps
	// THEN: Coverage is exactly 48 hours and each band appears twice
	//       in the raw slices
	start := 9 * 60
	end := start + 48*60
	slices := payroll.SliceRange(start, end, nil, d(1000))

	total := decimal.Zero
	perBand := make(map[payroll.Band]int)
	for _, s := range slices {
		total = total.Add(s.Hours)
		perBand[s.Band]++
	}

	if !total.Equal(d(48)) {
		t.Errorf("total hours = %s, want 48", total)
	}
	for _, band := range payroll.Bands {
		if band == payroll.BandNight {
			continue // night wraps midnight; slice count differs
		}
		if perBand[band] != 2 {
			t.Errorf("band %s traversed %d times, want 2", band, perBand[band])
		}
	}
}

// =============================================================================
// COVERAGE AND CONTIGUITY PROPERTIES
// =============================================================================

func TestSliceShift_CoversIntervalWithNoGaps(t *testing.T) {
	// For a sweep of same-day shifts, slice hours must sum to the
	// requested duration and be emitted in band-boundary order.
	for startHour := 0; startHour < 24; startHour++ {
		for length := 1; length <= 12; length++ {
			endMin := (startHour*60 + length*60) % (24 * 60)
			start := payroll.NewClock(startHour, 0)
			end := payroll.NewClock(endMin/60, endMin%60)

			slices := payroll.SliceShift(start, end, nil, d(1000))
			total := decimal.Zero
			for _, s := range slices {
				total = total.Add(s.Hours)
			}
			if !total.Equal(d(int64(length))) {
				t.Fatalf("shift %s-%s: covered %s hours, want %d", start, end, total, length)
			}
		}
	}
}

func TestCalculate_InvalidClock_FailsFast(t *testing.T) {
	_, err := payroll.Calculate("25:00", "06:00", nil, d(1000))
	if err == nil {
		t.Fatal("expected error for out-of-range hour")
	}
	_, err = payroll.Calculate("09:00", "banana", nil, d(1000))
	if err == nil {
		t.Fatal("expected error for non-numeric end time")
	}
}
