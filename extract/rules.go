/*
rules.go - Rule-based shift-request extractor

PURPOSE:
  The deterministic correctness baseline: a pure pattern matcher over
  free-form Japanese shift-request lines. No I/O, no state, identical
  input always yields identical output. Also serves as the guaranteed
  fallback for the model-assisted extractor.

PIPELINE (per line):
  1. Date gate: an M/D pattern; lines without one contribute nothing.
     No calendar validity check is performed (13/40 passes through) -
     a known looseness kept on purpose.
  2. Off-day markers win over everything else: type off, high priority.
  3. Availability markers: type available, medium priority.
  4. Time ranges, in order: colon-qualified H:MM-H:MM first, then bare
     H時-H. First match wins; minutes default to 0. Priority comes from
     firmness/flexibility keywords.
  5. Anything else after a date match is silently dropped, never an
     error.

SEE ALSO:
  - model.go: Falls back to this extractor
  - batch.go: Dispatches lines here
*/
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RuleNotes marks results produced by the rule-based path.
const RuleNotes = "ルールベース解析による結果"

// =============================================================================
// PATTERNS AND KEYWORD SETS
// =============================================================================

var (
	datePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})`)

	// Ordered time-range patterns: the colon-qualified form is tried
	// first so "13:30-17:00" is not split by the bare-hour rule.
	clockRangePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})時?\s*[-~〜]\s*(\d{1,2}):(\d{2})時?`)
	hourRangePattern  = regexp.MustCompile(`(\d{1,2})時\s*[-~〜]\s*(\d{1,2})時?`)
)

var offMarkers = []string{"休み", "休", "×", "✕", "NG", "OFF", "off"}

var availableMarkers = []string{"出勤可能", "出れます", "出られます", "いつでも", "○", "◯", "OK", "ok"}

var (
	firmWords     = []string{"絶対", "必ず", "どうしても"}
	flexibleWords = []string{"どちらでも", "可能なら"}
)

func containsAny(line string, words []string) bool {
	for _, w := range words {
		if strings.Contains(line, w) {
			return true
		}
	}
	return false
}

// =============================================================================
// RULE-BASED EXTRACTOR
// =============================================================================

// Rules is the rule-based extraction engine. The zero value is ready
// to use.
type Rules struct{}

// Extract parses every line of text against the rule pipeline and
// returns the collected requests. Never fails for any string input.
func (Rules) Extract(text string, year int) ExtractionResult {
	var requests []ShiftRequest
	for _, line := range strings.Split(text, "\n") {
		if req, ok := parseLine(line, year); ok {
			requests = append(requests, req)
		}
	}
	return ExtractionResult{
		OriginalText:    text,
		ParsedRequests:  requests,
		ProcessingNotes: RuleNotes,
	}
}

// parseLine runs the per-line pipeline. ok is false when the line has
// no recognizable date or no recognizable request shape.
func parseLine(line string, year int) (ShiftRequest, bool) {
	date := datePattern.FindStringSubmatch(line)
	if date == nil {
		return ShiftRequest{}, false
	}
	month, _ := strconv.Atoi(date[1])
	day, _ := strconv.Atoi(date[2])
	isoDate := fmt.Sprintf("%d-%02d-%02d", year, month, day)

	// Off-day markers take precedence over time ranges.
	if containsAny(line, offMarkers) {
		return ShiftRequest{
			Date:       isoDate,
			TimeSlots:  []TimeSlot{},
			Type:       TypeOff,
			Priority:   PriorityHigh,
			Confidence: 0.8,
		}, true
	}

	if containsAny(line, availableMarkers) {
		return ShiftRequest{
			Date:       isoDate,
			TimeSlots:  []TimeSlot{},
			Type:       TypeAvailable,
			Priority:   PriorityMedium,
			Confidence: 0.8,
		}, true
	}

	if slot, ok := parseTimeRange(line); ok {
		return ShiftRequest{
			Date:       isoDate,
			TimeSlots:  []TimeSlot{slot},
			Type:       TypeWork,
			Priority:   priorityFor(line),
			Confidence: 0.7,
		}, true
	}

	// Date but no recognizable shape: dropped, not an error.
	return ShiftRequest{}, false
}

// parseTimeRange tries the ordered range patterns; the first match
// wins. Minutes default to 0 when the pattern carries none.
func parseTimeRange(line string) (TimeSlot, bool) {
	if m := clockRangePattern.FindStringSubmatch(line); m != nil {
		return TimeSlot{
			Start: formatClock(m[1], m[2]),
			End:   formatClock(m[3], m[4]),
		}, true
	}
	if m := hourRangePattern.FindStringSubmatch(line); m != nil {
		return TimeSlot{
			Start: formatClock(m[1], "0"),
			End:   formatClock(m[2], "0"),
		}, true
	}
	return TimeSlot{}, false
}

func formatClock(hour, minute string) string {
	h, _ := strconv.Atoi(hour)
	m, _ := strconv.Atoi(minute)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// priorityFor derives priority from firmness/flexibility keywords;
// absent both, medium.
func priorityFor(line string) Priority {
	switch {
	case containsAny(line, firmWords):
		return PriorityHigh
	case containsAny(line, flexibleWords):
		return PriorityLow
	default:
		return PriorityMedium
	}
}
