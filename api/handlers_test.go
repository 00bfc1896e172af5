/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Extraction endpoint validation and rule-based happy path
- Payroll calculation endpoint, including stored rate tables
- Rate table CRUD
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nohataku/Asmito-sub001/extract"
	"github.com/nohataku/Asmito-sub001/payroll"
	"github.com/nohataku/Asmito-sub001/store/sqlite"
	"github.com/shopspring/decimal"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store, extract.NewBatch(nil))
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return out
}

// =============================================================================
// EXTRACTION ENDPOINT
// =============================================================================

func TestExtract_MissingText_BadRequest(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/shift-requests/extract", map[string]any{"mode": "single"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody[ErrorResponse](t, resp)
	if body.Error == "" {
		t.Error("expected a localized error message")
	}
}

func TestExtract_NonStringText_BadRequest(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/shift-requests/extract", map[string]any{"text": 42})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExtract_UnknownEngine_BadRequest(t *testing.T) {
	// Engine typos are a client error, never a silent fallback.
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/shift-requests/extract", map[string]any{
		"text":   "8/1 休み",
		"engine": "openia",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExtract_ModelEngineWithoutClient_BadRequest(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/shift-requests/extract", map[string]any{
		"text":   "8/1 休み",
		"engine": "model",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExtract_SingleMode_RuleBased(t *testing.T) {
	srv, store := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/shift-requests/extract", map[string]any{
		"text": "8/1 13時-17時",
		"year": 2025,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody[ExtractResponse](t, resp)
	if !body.Success {
		t.Error("expected success")
	}
	if body.Engine != string(extract.EngineRuleBased) {
		t.Errorf("engine = %q, want rule", body.Engine)
	}
	if body.Data == nil || len(body.Data.ParsedRequests) != 1 {
		t.Fatalf("expected 1 parsed request, got %+v", body.Data)
	}
	if body.Data.ParsedRequests[0].Date != "2025-08-01" {
		t.Errorf("date = %q, want 2025-08-01", body.Data.ParsedRequests[0].Date)
	}

	// The call is recorded in the audit log.
	logs, err := store.ListExtractionLogs(context.Background(), 10)
	if err != nil {
		t.Fatalf("Failed to list logs: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("expected 1 extraction log, got %d", len(logs))
	}
}

func TestExtract_BulkMode_PerLineResults(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/shift-requests/extract", map[string]any{
		"text": "8/1 13時-17時\nメモだけの行",
		"mode": "bulk",
		"year": 2025,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody[ExtractResponse](t, resp)
	if len(body.Lines) != 2 {
		t.Fatalf("expected 2 line entries, got %d", len(body.Lines))
	}

	total := 0
	for _, line := range body.Lines {
		if line.Error != "" {
			t.Errorf("unexpected line error: %s", line.Error)
		}
		total += len(line.Result.ParsedRequests)
	}
	if total != 1 {
		t.Errorf("expected exactly 1 request across the batch, got %d", total)
	}
}

// =============================================================================
// PAYROLL ENDPOINT
// =============================================================================

func TestCalculate_DayShift(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/payroll/calculate", CalculateRequest{
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody[CalculateResponse](t, resp)
	if body.TotalHours != 8 {
		t.Errorf("totalHours = %v, want 8", body.TotalHours)
	}
	if body.TotalPayment != 8000 {
		t.Errorf("totalPayment = %v, want 8000", body.TotalPayment)
	}
	if len(body.Breakdown) != 1 || body.Breakdown[0].Band != "day" {
		t.Errorf("breakdown = %+v, want single day segment", body.Breakdown)
	}
}

func TestCalculate_NightWrapWithInlineRates(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/payroll/calculate", CalculateRequest{
		StartTime: "22:00",
		EndTime:   "06:00",
		Rates:     map[string]float64{"night": 1250},
	})
	body := decodeBody[CalculateResponse](t, resp)
	if body.TotalPayment != 10000 {
		t.Errorf("totalPayment = %v, want 10000", body.TotalPayment)
	}
}

func TestCalculate_MalformedClock_BadRequest(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/payroll/calculate", CalculateRequest{
		StartTime: "9時",
		EndTime:   "17:00",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCalculate_UsesStoredRateTable(t *testing.T) {
	srv, store := newTestServer(t)

	err := store.SaveRateTable(context.Background(), sqlite.RateTableRecord{
		Name:         "shop-a",
		Rates:        payroll.RateTable{payroll.BandNight: decimal.NewFromInt(1500)},
		FallbackRate: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("Failed to save rate table: %v", err)
	}

	resp := postJSON(t, srv.URL+"/api/payroll/calculate", CalculateRequest{
		StartTime: "22:00",
		EndTime:   "06:00",
		RateTable: "shop-a",
	})
	body := decodeBody[CalculateResponse](t, resp)
	if body.TotalPayment != 12000 {
		t.Errorf("totalPayment = %v, want 12000 (stored night rate)", body.TotalPayment)
	}
}

// =============================================================================
// RATE TABLE ENDPOINTS
// =============================================================================

func TestRateTables_PutGetRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	payload, _ := json.Marshal(SaveRateTableRequest{
		Rates:        map[string]float64{"day": 1000, "night": 1250},
		FallbackRate: 950,
	})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/rate-tables/main", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	getResp, err := http.Get(srv.URL + "/api/rate-tables/main")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body := decodeBody[RateTableDTO](t, getResp)
	if body.Rates["night"] != 1250 || body.FallbackRate != 950 {
		t.Errorf("round trip mismatch: %+v", body)
	}
}

func TestRateTables_UnknownBand_BadRequest(t *testing.T) {
	srv, _ := newTestServer(t)

	payload, _ := json.Marshal(SaveRateTableRequest{
		Rates: map[string]float64{"lunch": 1000},
	})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/rate-tables/bad", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRateTables_GetMissing_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/rate-tables/ghost")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
