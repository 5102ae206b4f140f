package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*WebServer, *httptest.Server) {
	t.Helper()
	config, err := LoadDefaultConfig()
	require.NoError(t, err)

	ws := NewWebServer(config, MustFormatter(config.Format), "localhost:0")
	ws.exportDir = filepath.Join(t.TempDir(), "exports")

	srv := httptest.NewServer(ws.Handler())
	t.Cleanup(srv.Close)
	return ws, srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeCompare(t *testing.T, resp *http.Response) APICompareResponse {
	t.Helper()
	var out APICompareResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestWebServer_Index(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	missing, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestWebServer_Config(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/config")
	require.NoError(t, err)
	defer resp.Body.Close()

	var cfg APIConfigResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cfg))
	assert.Equal(t, RegimeFY2024, cfg.RegimeA)
	assert.Equal(t, "2025-26 Regime", cfg.RegimeBName)
	assert.Equal(t, 10_000_000.0, cfg.MaxIncome)
	assert.Equal(t, 50_000.0, cfg.IncomeStep)
	assert.Equal(t, 1_500_000.0, cfg.DefaultIncome)
	assert.Len(t, cfg.Presets, 6)
}

func TestWebServer_Regimes(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/regimes")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var regimes []APIRegime
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&regimes))
	require.Len(t, regimes, 2)

	slabs := regimes[0].Slabs
	require.Len(t, slabs, 6)
	require.NotNil(t, slabs[0].Upper)
	assert.Equal(t, 300_000.0, *slabs[0].Upper)
	assert.Nil(t, slabs[5].Upper, "top slab upper is null")
	assert.Equal(t, "₹15.00L and above", slabs[5].RangeLabel)
}

func TestWebServer_Compare(t *testing.T) {
	_, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/compare", `{"income": 1500000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeCompare(t, resp)

	assert.True(t, out.Success)
	assert.NotEmpty(t, out.CalculationID)
	assert.Equal(t, 1_500_000.0, out.Income)
	assertTaxEquals(t, 125_000, out.RegimeA.TotalTax, "regime A")
	assertTaxEquals(t, 93_750, out.RegimeB.TotalTax, "regime B")
	assertTaxEquals(t, 31_250, out.Savings, "savings")
	assert.Equal(t, "25.0%", out.SavingsPercentDisplay)
	assert.Equal(t, "prefer-regime-b", out.Recommendation)
	assert.Equal(t, "Switch to 2025-26 Regime", out.RecommendationText)
	assert.Len(t, out.Sweep, 16)

	require.Len(t, out.RegimeA.Breakdown, 5)
	assert.Equal(t, "₹3.00L - ₹7.00L", out.RegimeA.Breakdown[1].RangeLabel)
	assertTaxEquals(t, 125_000, out.RegimeA.GrandTotal.Tax, "grand total")
	assert.Equal(t, 0.20, out.RegimeA.MarginalRate)
	assert.Equal(t, 0.15, out.RegimeB.MarginalRate)
}

func TestWebServer_CompareTopSlabUpperIsNull(t *testing.T) {
	_, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/compare", `{"income": 5000000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeCompare(t, resp)

	last := out.RegimeA.Breakdown[len(out.RegimeA.Breakdown)-1]
	assert.Nil(t, last.Upper)
	assert.Equal(t, "₹15.00L and above", last.RangeLabel)
}

func TestWebServer_CompareZeroIncome(t *testing.T) {
	_, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/compare", `{"income": 0}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeCompare(t, resp)

	assert.True(t, out.Success)
	assert.False(t, out.SavingsPercentApplicable)
	assert.Equal(t, "n/a", out.SavingsPercentDisplay)
	assert.Equal(t, "prefer-regime-a", out.Recommendation)
	assert.Len(t, out.Sweep, 1)
}

func TestWebServer_CompareInvalid(t *testing.T) {
	_, srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing income", `{}`},
		{"null income", `{"income": null}`},
		{"negative income", `{"income": -10}`},
		{"text income", `{"income": "lots"}`},
		{"not json", `income=5`},
		{"negative bracket", `{"income": 100000, "bracket_size": -5}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/compare", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			out := decodeCompare(t, resp)
			assert.False(t, out.Success)
			assert.NotEmpty(t, out.Error)
		})
	}

	resp, err := http.Get(srv.URL + "/api/compare")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestWebServer_CompareRejectsHugeSweeps(t *testing.T) {
	_, srv := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"above max income", `{"income": 1e18}`, "invalid income"},
		{"far above max income", `{"income": 1e300}`, "invalid income"},
		{"tiny bracket", `{"income": 10000000, "bracket_size": 0.01}`, "invalid bracket size"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/compare", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			out := decodeCompare(t, resp)
			assert.False(t, out.Success)
			assert.Contains(t, out.Error, tc.wantErr)
		})
	}

	chart, err := http.Get(srv.URL + "/api/chart/trend.png?income=1e18")
	require.NoError(t, err)
	chart.Body.Close()
	assert.Equal(t, http.StatusBadRequest, chart.StatusCode)

	atMax := postJSON(t, srv.URL+"/api/compare", `{"income": 10000000}`)
	assert.Equal(t, http.StatusOK, atMax.StatusCode, "the configured maximum itself is allowed")
}

func TestWebServer_CompareRejectsOversizedBody(t *testing.T) {
	_, srv := newTestServer(t)

	body := `{"income": 1500000, "padding": "` + strings.Repeat("x", maxRequestBodyBytes) + `"}`
	resp := postJSON(t, srv.URL+"/api/compare", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decodeCompare(t, resp)
	assert.False(t, out.Success)
}

func TestWebServer_CompareCustomBracket(t *testing.T) {
	_, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/compare", `{"income": 1500000, "bracket_size": 500000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeCompare(t, resp)
	assert.Equal(t, 500_000.0, out.BracketSize)
	assert.Len(t, out.Sweep, 4)
}

func TestWebServer_Charts(t *testing.T) {
	_, srv := newTestServer(t)

	for _, path := range []string{"/api/chart/comparison.png", "/api/chart/trend.png"} {
		resp, err := http.Get(srv.URL + path + "?income=1500000")
		require.NoError(t, err)
		body := new(bytes.Buffer)
		_, err = body.ReadFrom(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"), path)
		assert.True(t, bytes.HasPrefix(body.Bytes(), pngMagic), path)

		bad, err := http.Get(srv.URL + path + "?income=abc")
		require.NoError(t, err)
		bad.Body.Close()
		assert.Equal(t, http.StatusBadRequest, bad.StatusCode, path)

		missing, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		missing.Body.Close()
		assert.Equal(t, http.StatusBadRequest, missing.StatusCode, path)
	}
}

func TestWebServer_ExportPDF(t *testing.T) {
	_, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/export-pdf", `{"income": 1500000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out ExportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)

	data, err := os.ReadFile(out.FilePath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	bad := postJSON(t, srv.URL+"/api/export-pdf", `{}`)
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestWebServer_ExportHTML(t *testing.T) {
	ws, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/export-html", `{"income": 1500000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out ExportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Equal(t, ws.exportDir, filepath.Dir(out.FilePath))
	assert.True(t, strings.HasSuffix(out.FilePath, ".html"))

	data, err := os.ReadFile(out.FilePath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("<!DOCTYPE html>")))

	bad := postJSON(t, srv.URL+"/api/export-html", `{"income": 1e18}`)
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestWebServer_DownloadPDF(t *testing.T) {
	_, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/download-pdf", `{"income": 800000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "tax-comparison-800000-")
}

func TestWebServer_ExportCSV(t *testing.T) {
	ws, srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/export-csv", `{"income": 250000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out ExportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Equal(t, ws.exportDir, filepath.Dir(out.FilePath))

	data, err := os.ReadFile(out.FilePath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "bracket_lower,bracket_upper,income_bracket"))
}

func TestWebServer_StartForEmbedded(t *testing.T) {
	config, err := LoadDefaultConfig()
	require.NoError(t, err)
	ws := NewWebServer(config, MustFormatter(config.Format), "127.0.0.1:0")

	url, cleanup, err := ws.StartForEmbedded()
	require.NoError(t, err)
	defer cleanup()

	resp, err := http.Get(url + "/api/presets")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var presets []Preset
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&presets))
	assert.Len(t, presets, 6)
}
