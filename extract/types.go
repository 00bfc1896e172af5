/*
Package extract turns free-form employee shift-request text into
structured records.

PURPOSE:
  Two interchangeable engines produce the same output shape:
  - Rules: a pure, deterministic pattern matcher (the correctness
    baseline, always available, no I/O)
  - ModelExtractor: a generative-model call that is trusted only when
    it yields at least one request, and otherwise substitutes the
    rule-based result wholesale (never a partial merge)

KEY CONCEPTS IN THIS FILE (types.go):
  - ShiftRequest: one extracted request (date, slots, type, priority)
  - ExtractionResult: all requests extracted from one input text
  - Engine: closed enum selecting the implementation

CONFIDENCE:
  Confidence is a heuristic extraction score in [0,1], advisory only.
  Nothing downstream enforces it.

SEE ALSO:
  - rules.go: Rule-based extractor
  - model.go: Model-assisted extractor and fallback policy
  - batch.go: Multi-line orchestration
*/
package extract

import (
	"fmt"
	"strings"
)

// =============================================================================
// REQUEST TYPES AND PRIORITIES
// =============================================================================

type RequestType string

const (
	TypeWork      RequestType = "work"
	TypeOff       RequestType = "off"
	TypeAvailable RequestType = "available"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// =============================================================================
// EXTRACTED RECORDS
// =============================================================================

// TimeSlot is one requested working window, both ends "HH:MM".
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ShiftRequest is a single structured shift request. TimeSlots is
// empty for off/available requests. JSON field names are the external
// contract; do not rename.
type ShiftRequest struct {
	Date       string      `json:"date"` // ISO calendar date, YYYY-MM-DD
	TimeSlots  []TimeSlot  `json:"timeSlots"`
	Type       RequestType `json:"type"`
	Priority   Priority    `json:"priority"`
	Notes      string      `json:"notes,omitempty"`
	Confidence float64     `json:"confidence"`
}

// ExtractionResult carries everything extracted from one input text.
type ExtractionResult struct {
	OriginalText    string         `json:"originalText"`
	ParsedRequests  []ShiftRequest `json:"parsedRequests"`
	ProcessingNotes string         `json:"processingNotes,omitempty"`
}

// =============================================================================
// ENGINE - Closed enum, validated at the boundary
// =============================================================================

type Engine string

const (
	EngineRuleBased     Engine = "rule"
	EngineModelAssisted Engine = "model"
)

// ParseEngine validates an externally supplied engine name. Empty
// defaults to the rule-based engine; unknown values are an error, not
// a silent fallback. "openai" is accepted as a legacy alias for the
// model engine.
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rule", "rules", "rule-based":
		return EngineRuleBased, nil
	case "model", "openai", "ai":
		return EngineModelAssisted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, s)
	}
}

// =============================================================================
// MODE
// =============================================================================

type Mode string

const (
	ModeSingle Mode = "single"
	ModeBulk   Mode = "bulk"
)

// ParseMode validates a mode name; empty defaults to single.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single":
		return ModeSingle, nil
	case "bulk":
		return ModeBulk, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}
