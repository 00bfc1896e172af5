/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the internal
  domain types (decimal amounts, typed enums) from the external
  contract (plain floats, strings).

NAMING CONVENTION:
  - *Request: request body types from clients
  - *Response / *DTO: types returned to clients

VALIDATION:
  Done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - extract/types.go: ShiftRequest/ExtractionResult JSON contract
*/
package api

import (
	"time"

	"github.com/nohataku/Asmito-sub001/extract"
	"github.com/nohataku/Asmito-sub001/payroll"
	"github.com/nohataku/Asmito-sub001/store/sqlite"
)

// =============================================================================
// EXTRACTION
// =============================================================================

// ExtractRequest is the extraction entry point's body. Text is a
// pointer so a missing field is distinguishable from an empty string.
type ExtractRequest struct {
	Text   *string `json:"text"`
	Mode   string  `json:"mode,omitempty"`   // single|bulk, default single
	Engine string  `json:"engine,omitempty"` // rule|model, default rule
	Year   int     `json:"year,omitempty"`   // reference year, default current

	// Fallback controls whether model failures substitute the
	// rule-based result. Explicit per request; absent defaults to
	// true.
	Fallback *bool `json:"fallback,omitempty"`
}

// ExtractResponse wraps single-mode (Data) or bulk-mode (Lines)
// output.
type ExtractResponse struct {
	Success bool                      `json:"success"`
	Engine  string                    `json:"engine"`
	Data    *extract.ExtractionResult `json:"data,omitempty"`
	Lines   []LineResultDTO           `json:"lines,omitempty"`
}

// LineResultDTO is one bulk-mode entry: a result or an error, never
// both.
type LineResultDTO struct {
	Line   string                    `json:"line"`
	Result *extract.ExtractionResult `json:"result,omitempty"`
	Error  string                    `json:"error,omitempty"`
}

// =============================================================================
// PAYROLL
// =============================================================================

// CalculateRequest is the payment calculation entry point's body.
// Rates and RateTable are alternatives: inline rates win; a named
// table is loaded from the store.
type CalculateRequest struct {
	StartTime    string             `json:"start_time"`
	EndTime      string             `json:"end_time"`
	Rates        map[string]float64 `json:"rates,omitempty"`
	RateTable    string             `json:"rate_table,omitempty"`
	FallbackRate *float64           `json:"fallback_rate,omitempty"`
}

type SegmentDTO struct {
	Band    string  `json:"band"`
	Hours   float64 `json:"hours"`
	Rate    float64 `json:"rate"`
	Payment float64 `json:"payment"`
}

type CalculateResponse struct {
	TotalHours   float64      `json:"totalHours"`
	TotalPayment float64      `json:"totalPayment"`
	Breakdown    []SegmentDTO `json:"breakdown"`
}

// =============================================================================
// RATE TABLES
// =============================================================================

type RateTableDTO struct {
	Name         string             `json:"name"`
	Rates        map[string]float64 `json:"rates"`
	FallbackRate float64            `json:"fallback_rate"`
}

type SaveRateTableRequest struct {
	Rates        map[string]float64 `json:"rates"`
	FallbackRate float64            `json:"fallback_rate"`
}

// =============================================================================
// EXTRACTION HISTORY
// =============================================================================

type ExtractionLogDTO struct {
	ID        string `json:"id"`
	InputText string `json:"input_text"`
	Engine    string `json:"engine"`
	Result    string `json:"result"`
	CreatedAt string `json:"created_at"`
}

// ErrorResponse is the standard error response. Error carries the
// user-facing (localized) message, Details the technical cause.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toSegmentDTO(s payroll.Segment) SegmentDTO {
	hours, _ := s.Hours.Float64()
	rate, _ := s.Rate.Float64()
	payment, _ := s.Payment.Float64()
	return SegmentDTO{
		Band:    string(s.Band),
		Hours:   hours,
		Rate:    rate,
		Payment: payment,
	}
}

func toCalculateResponse(b payroll.Breakdown) CalculateResponse {
	totalHours, _ := b.TotalHours.Float64()
	totalPayment, _ := b.TotalPayment.Float64()

	breakdown := make([]SegmentDTO, len(b.Segments))
	for i, s := range b.Segments {
		breakdown[i] = toSegmentDTO(s)
	}
	return CalculateResponse{
		TotalHours:   totalHours,
		TotalPayment: totalPayment,
		Breakdown:    breakdown,
	}
}

func toRateTableDTO(rec *sqlite.RateTableRecord) RateTableDTO {
	rates := make(map[string]float64, len(rec.Rates))
	for band, rate := range rec.Rates {
		v, _ := rate.Float64()
		rates[string(band)] = v
	}
	fallback, _ := rec.FallbackRate.Float64()
	return RateTableDTO{
		Name:         rec.Name,
		Rates:        rates,
		FallbackRate: fallback,
	}
}

func toExtractionLogDTO(rec sqlite.ExtractionLogRecord) ExtractionLogDTO {
	return ExtractionLogDTO{
		ID:        rec.ID,
		InputText: rec.InputText,
		Engine:    rec.Engine,
		Result:    rec.ResultJSON,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
	}
}

func toLineResultDTOs(results []extract.LineResult) []LineResultDTO {
	dtos := make([]LineResultDTO, len(results))
	for i, r := range results {
		dto := LineResultDTO{Line: r.Line, Result: r.Result}
		if r.Err != nil {
			dto.Error = r.Err.Error()
			dto.Result = nil
		}
		dtos[i] = dto
	}
	return dtos
}
