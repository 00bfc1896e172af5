/*
handlers.go - HTTP API handlers for the shift temporal reasoning engine

PURPOSE:
  Exposes the extraction engines and the payroll calculator over REST.
  Handles HTTP request/response, JSON serialization, and delegates to
  the domain packages.

ENDPOINTS:
  Extraction:
    POST   /api/shift-requests/extract  Parse free-form shift text
    GET    /api/extractions             Recent extraction history

  Payroll:
    POST   /api/payroll/calculate       Band-split payment calculation

  Rate tables:
    GET    /api/rate-tables             List stored table names
    GET    /api/rate-tables/{name}      Get one table
    PUT    /api/rate-tables/{name}      Create/replace one table

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Missing text, unknown engine/mode, malformed clock strings,
         unknown band names
  - 404: Rate table not found
  - 500: Store failures, unrecovered model failures

  The user-facing message is localized; the technical cause travels in
  the details field.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nohataku/Asmito-sub001/extract"
	"github.com/nohataku/Asmito-sub001/payroll"
	"github.com/nohataku/Asmito-sub001/store/sqlite"
	"github.com/shopspring/decimal"
)

// defaultFallbackRate applies when a calculation request carries
// neither an inline fallback nor a stored table.
var defaultFallbackRate = decimal.NewFromInt(1000)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
	Batch *extract.Batch
}

// NewHandler creates a new handler. batch.Model may be nil; the model
// engine is then rejected at the boundary.
func NewHandler(store *sqlite.Store, batch *extract.Batch) *Handler {
	return &Handler{Store: store, Batch: batch}
}

// =============================================================================
// EXTRACTION HANDLERS
// =============================================================================

// ExtractShiftRequests parses free-form shift-request text.
func (h *Handler) ExtractShiftRequests(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "リクエストの形式が正しくありません", err)
		return
	}
	if req.Text == nil {
		writeError(w, http.StatusBadRequest, "テキストが指定されていません", nil)
		return
	}

	engine, err := extract.ParseEngine(req.Engine)
	if err != nil {
		writeError(w, http.StatusBadRequest, "不明なエンジンが指定されました", err)
		return
	}
	mode, err := extract.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "不明なモードが指定されました", err)
		return
	}

	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	opts := extract.Options{
		Engine: engine,
		Mode:   mode,
		Year:   year,
	}
	if req.Fallback != nil {
		opts.DisableFallback = !*req.Fallback
	}

	results, err := h.Batch.Run(r.Context(), *req.Text, opts)
	if err != nil {
		if errors.Is(err, extract.ErrModelUnavailable) {
			writeError(w, http.StatusBadRequest, "AIエンジンが設定されていません", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "シフト希望の解析に失敗しました", err)
		return
	}

	resp := ExtractResponse{Success: true, Engine: string(engine)}
	if mode == extract.ModeBulk {
		resp.Lines = toLineResultDTOs(results)
	} else {
		single := results[0]
		if single.Err != nil {
			writeError(w, http.StatusInternalServerError, "シフト希望の解析に失敗しました", single.Err)
			return
		}
		resp.Data = single.Result
	}

	h.logExtraction(r, *req.Text, engine, resp)
	writeJSON(w, http.StatusOK, resp)
}

// logExtraction records the call best-effort; a failing audit log
// never fails the request.
func (h *Handler) logExtraction(r *http.Request, text string, engine extract.Engine, resp ExtractResponse) {
	if h.Store == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	rec := sqlite.ExtractionLogRecord{
		ID:         uuid.NewString(),
		InputText:  text,
		Engine:     string(engine),
		ResultJSON: string(payload),
	}
	if err := h.Store.AppendExtractionLog(r.Context(), rec); err != nil {
		log.Printf("Warning: failed to record extraction log: %v", err)
	}
}

// ListExtractions returns recent extraction history, newest first.
func (h *Handler) ListExtractions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.Store.ListExtractionLogs(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "履歴の取得に失敗しました", err)
		return
	}

	dtos := make([]ExtractionLogDTO, len(records))
	for i, rec := range records {
		dtos[i] = toExtractionLogDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// CalculatePayment splits a shift into rate segments and totals them.
func (h *Handler) CalculatePayment(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "リクエストの形式が正しくありません", err)
		return
	}

	rates, fallback, err := h.resolveRates(r, req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "時給設定の取得に失敗しました", err)
		return
	}
	if req.FallbackRate != nil {
		fallback = decimal.NewFromFloat(*req.FallbackRate)
	}

	breakdown, err := payroll.Calculate(req.StartTime, req.EndTime, rates, fallback)
	if err != nil {
		if errors.Is(err, payroll.ErrInvalidClock) {
			writeError(w, http.StatusBadRequest, "時刻の形式が正しくありません", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "給与計算に失敗しました", err)
		return
	}

	writeJSON(w, http.StatusOK, toCalculateResponse(breakdown))
}

// resolveRates picks the rate configuration: inline rates win, then a
// stored named table, then nothing (fallback-only).
func (h *Handler) resolveRates(r *http.Request, req CalculateRequest) (payroll.RateTable, decimal.Decimal, error) {
	if req.Rates != nil {
		return payroll.NewRateTable(req.Rates), defaultFallbackRate, nil
	}

	if req.RateTable != "" && h.Store != nil {
		rec, err := h.Store.GetRateTable(r.Context(), req.RateTable)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if rec != nil {
			return rec.Rates, rec.FallbackRate, nil
		}
	}

	return nil, defaultFallbackRate, nil
}

// =============================================================================
// RATE TABLE HANDLERS
// =============================================================================

// ListRateTables returns all stored rate table names.
func (h *Handler) ListRateTables(w http.ResponseWriter, r *http.Request) {
	names, err := h.Store.ListRateTables(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "時給設定の一覧取得に失敗しました", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// GetRateTable returns one stored rate table.
func (h *Handler) GetRateTable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rec, err := h.Store.GetRateTable(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "時給設定の取得に失敗しました", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "時給設定が見つかりません", nil)
		return
	}
	writeJSON(w, http.StatusOK, toRateTableDTO(rec))
}

// SaveRateTable creates or replaces a stored rate table.
func (h *Handler) SaveRateTable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req SaveRateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "リクエストの形式が正しくありません", err)
		return
	}

	rec := sqlite.RateTableRecord{
		Name:         name,
		Rates:        payroll.RateTable{},
		FallbackRate: decimal.NewFromFloat(req.FallbackRate),
	}
	for bandName, rate := range req.Rates {
		band := payroll.Band(bandName)
		if !payroll.ValidBand(band) {
			writeError(w, http.StatusBadRequest, "不明な時間帯が含まれています", errors.New("unknown band: "+bandName))
			return
		}
		rec.Rates[band] = decimal.NewFromFloat(rate)
	}

	if err := h.Store.SaveRateTable(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "時給設定の保存に失敗しました", err)
		return
	}
	writeJSON(w, http.StatusOK, toRateTableDTO(&rec))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
