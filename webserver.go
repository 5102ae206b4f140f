package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// maxRequestBodyBytes bounds JSON request bodies
const maxRequestBodyBytes = 4 << 10

// WebServer holds the HTTP server configuration
type WebServer struct {
	config    *Config
	format    *Formatter
	addr      string
	exportDir string
}

// NewWebServer creates a new web server instance
func NewWebServer(config *Config, f *Formatter, addr string) *WebServer {
	return &WebServer{
		config:    config,
		format:    f,
		addr:      addr,
		exportDir: "exports",
	}
}

// APICompareRequest asks for a comparison at one income
type APICompareRequest struct {
	Income      *float64 `json:"income"`
	BracketSize float64  `json:"bracket_size,omitempty"`
}

// APIBreakdownLine is one slab of a breakdown table
type APIBreakdownLine struct {
	Slab           string   `json:"slab"`
	Lower          float64  `json:"lower"`
	Upper          *float64 `json:"upper"` // null for the unbounded top slab
	TaxableAmount  float64  `json:"taxable_amount"`
	Rate           float64  `json:"rate"`
	Tax            float64  `json:"tax"`
	RangeLabel     string   `json:"range_label"`
	TaxableDisplay string   `json:"taxable_display"`
	RateDisplay    string   `json:"rate_display"`
	TaxDisplay     string   `json:"tax_display"`
}

// APITaxResult is one regime's result
type APITaxResult struct {
	RegimeID        RegimeID           `json:"regime_id"`
	RegimeName      string             `json:"regime_name"`
	Exemption       float64            `json:"exemption"`
	TaxableIncome   float64            `json:"taxable_income"`
	TotalTax        float64            `json:"total_tax"`
	TotalTaxDisplay string             `json:"total_tax_display"`
	EffectiveRate   float64            `json:"effective_rate"`
	MarginalRate    float64            `json:"marginal_rate"`
	Breakdown       []APIBreakdownLine `json:"breakdown"`
	GrandTotal      APIBreakdownLine   `json:"grand_total"`
}

// APIBracketPoint is one row of the sweep
type APIBracketPoint struct {
	Lower          float64 `json:"lower"`
	Upper          float64 `json:"upper"`
	Label          string  `json:"label"`
	TaxA           float64 `json:"tax_a"`
	TaxB           float64 `json:"tax_b"`
	Savings        float64 `json:"savings"`
	TaxADisplay    string  `json:"tax_a_display"`
	TaxBDisplay    string  `json:"tax_b_display"`
	SavingsDisplay string  `json:"savings_display"`
}

// APICompareResponse carries the full report for one income
type APICompareResponse struct {
	Success                  bool              `json:"success"`
	Error                    string            `json:"error,omitempty"`
	CalculationID            string            `json:"calculation_id,omitempty"`
	Income                   float64           `json:"income"`
	IncomeDisplay            string            `json:"income_display,omitempty"`
	RegimeA                  *APITaxResult     `json:"regime_a,omitempty"`
	RegimeB                  *APITaxResult     `json:"regime_b,omitempty"`
	Savings                  float64           `json:"savings"`
	SavingsDisplay           string            `json:"savings_display,omitempty"`
	SavingsPercent           float64           `json:"savings_percent"`
	SavingsPercentApplicable bool              `json:"savings_percent_applicable"`
	SavingsPercentDisplay    string            `json:"savings_percent_display,omitempty"`
	Recommendation           string            `json:"recommendation,omitempty"`
	RecommendationText       string            `json:"recommendation_text,omitempty"`
	BracketSize              float64           `json:"bracket_size,omitempty"`
	Sweep                    []APIBracketPoint `json:"sweep,omitempty"`
}

// APIConfigResponse describes the UI settings
type APIConfigResponse struct {
	RegimeA       RegimeID     `json:"regime_a"`
	RegimeB       RegimeID     `json:"regime_b"`
	RegimeAName   string       `json:"regime_a_name"`
	RegimeBName   string       `json:"regime_b_name"`
	DefaultIncome float64      `json:"default_income"`
	MaxIncome     float64      `json:"max_income"`
	IncomeStep    float64      `json:"income_step"`
	BracketSize   float64      `json:"bracket_size"`
	Presets       []Preset     `json:"presets"`
	Format        FormatConfig `json:"format"`
}

// ExportResponse represents the response from PDF or CSV export
type ExportResponse struct {
	Success  bool   `json:"success"`
	FilePath string `json:"file_path,omitempty"`
	Message  string `json:"message"`
}

// Handler returns the HTTP handler with all routes registered
func (ws *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", ws.handleIndex)
	mux.HandleFunc("/api/config", ws.handleGetConfig)
	mux.HandleFunc("/api/presets", ws.handlePresets)
	mux.HandleFunc("/api/regimes", ws.handleRegimes)
	mux.HandleFunc("/api/compare", ws.handleCompare)
	mux.HandleFunc("/api/chart/comparison.png", ws.handleComparisonChart)
	mux.HandleFunc("/api/chart/trend.png", ws.handleTrendChart)
	mux.HandleFunc("/api/export-csv", ws.handleExportCSV)
	mux.HandleFunc("/api/export-pdf", ws.handleExportPDF)
	mux.HandleFunc("/api/export-html", ws.handleExportHTML)
	mux.HandleFunc("/api/download-pdf", ws.handleDownloadPDF)

	return logRequests(mux)
}

// logRequests logs every request with its duration
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		serverLog.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debug("request handled")
	})
}

// listen opens the listener and works out the browser URL for it
func (ws *WebServer) listen() (net.Listener, string, error) {
	// Listen on the address (use :0 for auto-assign)
	listener, err := net.Listen("tcp", ws.addr)
	if err != nil {
		return nil, "", err
	}

	actualAddr := listener.Addr().String()
	url := fmt.Sprintf("http://%s", actualAddr)

	// If listening on all interfaces, use localhost for the URL
	if strings.HasPrefix(actualAddr, ":") || strings.HasPrefix(actualAddr, "0.0.0.0:") || strings.HasPrefix(actualAddr, "[::]:") {
		port := actualAddr[strings.LastIndex(actualAddr, ":")+1:]
		url = fmt.Sprintf("http://localhost:%s", port)
	}
	return listener, url, nil
}

// Start starts the web server, opens the browser and blocks until ctx is done
func (ws *WebServer) Start(ctx context.Context) error {
	listener, url, err := ws.listen()
	if err != nil {
		return err
	}

	serverLog.Infof("Starting web server on %s", listener.Addr())
	serverLog.Infof("Opening %s in your browser...", url)
	go openBrowser(url)

	server := &http.Server{Handler: ws.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartForEmbedded starts the server and returns the URL and a cleanup function.
// Unlike Start(), this does NOT open the browser and does NOT block.
func (ws *WebServer) StartForEmbedded() (url string, cleanup func(), err error) {
	listener, url, err := ws.listen()
	if err != nil {
		return "", nil, err
	}

	serverLog.Infof("Starting embedded web server on %s", listener.Addr())

	server := &http.Server{Handler: ws.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			serverLog.WithError(err).Error("server stopped")
		}
	}()

	cleanup = func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}
	return url, cleanup, nil
}

// handleIndex serves the main web UI
func (ws *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, webUIHTML)
}

// handleGetConfig returns the UI settings derived from the configuration
func (ws *WebServer) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	a, b, err := ws.config.Regimes()
	if err != nil {
		sendJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIConfigResponse{
		RegimeA:       a.ID,
		RegimeB:       b.ID,
		RegimeAName:   a.Name,
		RegimeBName:   b.Name,
		DefaultIncome: ws.config.DefaultIncome,
		MaxIncome:     ws.config.MaxIncome,
		IncomeStep:    ws.config.IncomeStep,
		BracketSize:   ws.config.Sweep.GetBracketSize(),
		Presets:       ws.config.BuildPresets(ws.format),
		Format:        ws.format.Config(),
	})
}

// handlePresets returns the preset income buttons
func (ws *WebServer) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ws.config.BuildPresets(ws.format))
}

// APISlab is a slab with a nullable upper bound, since JSON has no infinity
type APISlab struct {
	Name       string   `json:"name"`
	Lower      float64  `json:"lower"`
	Upper      *float64 `json:"upper"`
	Rate       float64  `json:"rate"`
	RangeLabel string   `json:"range_label"`
}

// APIRegime describes one built-in regime
type APIRegime struct {
	ID        RegimeID  `json:"id"`
	Name      string    `json:"name"`
	Exemption float64   `json:"exemption"`
	Slabs     []APISlab `json:"slabs"`
}

// handleRegimes lists the built-in regimes and their slab tables
func (ws *WebServer) handleRegimes(w http.ResponseWriter, r *http.Request) {
	regimes := make([]APIRegime, 0, len(KnownRegimeIDs()))
	for _, id := range KnownRegimeIDs() {
		regime, err := RegimeByID(id)
		if err != nil {
			sendJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		regimes = append(regimes, APIRegime{
			ID:        regime.ID,
			Name:      regime.Name,
			Exemption: regime.Exemption,
			Slabs: lo.Map(regime.Slabs, func(slab Slab, i int) APISlab {
				lower := regime.Slabs.Lower(i)
				var upper *float64
				if !slab.IsUnbounded() {
					upper = lo.ToPtr(slab.Upper)
				}
				return APISlab{
					Name:       slab.Name,
					Lower:      lower,
					Upper:      upper,
					Rate:       slab.Rate,
					RangeLabel: ws.format.Range(lower, slab.Upper),
				}
			}),
		})
	}
	writeJSON(w, http.StatusOK, regimes)
}

// handleCompare runs the comparison and sweep for the requested income
func (ws *WebServer) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := ws.reportFromBody(w, r)
	if err != nil {
		ws.sendReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convertToAPIResponse(report, ws.format))
}

// handleComparisonChart renders the bar chart for ?income=
func (ws *WebServer) handleComparisonChart(w http.ResponseWriter, r *http.Request) {
	report, err := ws.reportFromQuery(r)
	if err != nil {
		ws.sendReportError(w, err)
		return
	}
	png, err := RenderComparisonChart(report.Comparison, ws.format)
	if err != nil {
		sendJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writePNG(w, png)
}

// handleTrendChart renders the sweep line chart for ?income=
func (ws *WebServer) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	report, err := ws.reportFromQuery(r)
	if err != nil {
		ws.sendReportError(w, err)
		return
	}
	c := report.Comparison
	png, err := RenderTrendChart(report.Sweep, c.RegimeA, c.RegimeB, ws.format)
	if err != nil {
		sendJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writePNG(w, png)
}

// handleExportCSV saves the sweep as CSV under the exports directory
func (ws *WebServer) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := ws.reportFromBody(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ExportResponse{Success: false, Message: err.Error()})
		return
	}

	absPath, err := ExportSweepCSV(report, ws.exportDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ExportResponse{Success: false, Message: "Failed to write CSV: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ExportResponse{
		Success:  true,
		FilePath: absPath,
		Message:  fmt.Sprintf("CSV saved to %s", absPath),
	})
}

// handleExportHTML saves the standalone HTML report under the exports directory
func (ws *WebServer) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ExportResponse{Success: false, Message: "Method not allowed"})
		return
	}

	report, err := ws.reportFromBody(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ExportResponse{Success: false, Message: err.Error()})
		return
	}

	filePath, err := GenerateHTMLReportInDir(report, ws.format, ws.exportDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ExportResponse{Success: false, Message: "Failed to write HTML report: " + err.Error()})
		return
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		absPath = filePath
	}
	writeJSON(w, http.StatusOK, ExportResponse{
		Success:  true,
		FilePath: absPath,
		Message:  fmt.Sprintf("HTML report saved to %s", absPath),
	})
}

// handleExportPDF generates the PDF report and saves it to the exports directory
func (ws *WebServer) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ExportResponse{Success: false, Message: "Method not allowed"})
		return
	}

	report, err := ws.reportFromBody(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ExportResponse{Success: false, Message: err.Error()})
		return
	}

	pdfBytes, err := GenerateComparisonPDFReport(report, ws.format)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ExportResponse{Success: false, Message: "Failed to generate PDF: " + err.Error()})
		return
	}

	if err := os.MkdirAll(ws.exportDir, 0755); err != nil {
		writeJSON(w, http.StatusInternalServerError, ExportResponse{Success: false, Message: "Failed to create exports directory: " + err.Error()})
		return
	}

	filePath := filepath.Join(ws.exportDir, pdfFilename(report))
	if err := os.WriteFile(filePath, pdfBytes, 0644); err != nil {
		writeJSON(w, http.StatusInternalServerError, ExportResponse{Success: false, Message: "Failed to write PDF: " + err.Error()})
		return
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		absPath = filePath
	}
	serverLog.WithField("file", absPath).Info("PDF report exported")

	writeJSON(w, http.StatusOK, ExportResponse{
		Success:  true,
		FilePath: absPath,
		Message:  fmt.Sprintf("PDF report saved to %s", absPath),
	})
}

// handleDownloadPDF returns PDF content directly for browser download
func (ws *WebServer) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := ws.reportFromBody(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pdfBytes, err := GenerateComparisonPDFReport(report, ws.format)
	if err != nil {
		http.Error(w, "Failed to generate PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", pdfFilename(report)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}

// reportFromBody decodes an APICompareRequest and builds the report
func (ws *WebServer) reportFromBody(w http.ResponseWriter, r *http.Request) (Report, error) {
	var req APICompareRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Report{}, ValidationError{Field: "body", Message: "Invalid request body: " + err.Error()}
	}
	if req.Income == nil {
		return Report{}, fmt.Errorf("%w: income is required", ErrInvalidIncome)
	}
	return ws.buildReport(*req.Income, req.BracketSize)
}

// reportFromQuery builds the report for the income and bracket query parameters
func (ws *WebServer) reportFromQuery(r *http.Request) (Report, error) {
	raw := r.URL.Query().Get("income")
	if raw == "" {
		return Report{}, fmt.Errorf("%w: income is required", ErrInvalidIncome)
	}
	income, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %q is not a number", ErrInvalidIncome, raw)
	}

	var bracketSize float64
	if rawSize := r.URL.Query().Get("bracket"); rawSize != "" {
		bracketSize, err = strconv.ParseFloat(rawSize, 64)
		if err != nil {
			return Report{}, fmt.Errorf("%w: %q is not a number", ErrInvalidBracketSize, rawSize)
		}
	}
	return ws.buildReport(income, bracketSize)
}

func (ws *WebServer) buildReport(income, bracketSize float64) (Report, error) {
	if ws.config.MaxIncome > 0 && income > ws.config.MaxIncome {
		return Report{}, fmt.Errorf("%w: %g exceeds the maximum of %s",
			ErrInvalidIncome, income, ws.format.Money(ws.config.MaxIncome))
	}
	config := *ws.config
	if bracketSize != 0 {
		config.Sweep.BracketSize = bracketSize
		if bracketSize < 0 {
			return Report{}, fmt.Errorf("%w: must be a positive number (got %g)", ErrInvalidBracketSize, bracketSize)
		}
	}
	return BuildReport(income, &config, ws.format)
}

// sendReportError maps calculator errors to HTTP status codes
func (ws *WebServer) sendReportError(w http.ResponseWriter, err error) {
	var validationErr ValidationError
	switch {
	case errors.Is(err, ErrInvalidIncome), errors.Is(err, ErrInvalidBracketSize), errors.As(err, &validationErr):
		serverLog.WithError(err).Debug("rejected request")
		sendJSONError(w, http.StatusBadRequest, err.Error())
	default:
		serverLog.WithError(err).Error("calculation failed")
		sendJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func pdfFilename(report Report) string {
	return fmt.Sprintf("tax-comparison-%.0f-%s.pdf", report.Comparison.Income, report.CalculationID)
}

// convertToAPIResponse flattens a report into the JSON response, adding
// display strings so the browser never re-implements the formatter
func convertToAPIResponse(report Report, f *Formatter) APICompareResponse {
	c := report.Comparison
	percentDisplay := savingsPercentText(c, f)

	return APICompareResponse{
		Success:                  true,
		CalculationID:            report.CalculationID,
		Income:                   c.Income,
		IncomeDisplay:            f.MoneyFull(c.Income),
		RegimeA:                  convertToAPITaxResult(c.RegimeA, c.ResultA, f),
		RegimeB:                  convertToAPITaxResult(c.RegimeB, c.ResultB, f),
		Savings:                  c.Savings,
		SavingsDisplay:           f.Money(c.Savings),
		SavingsPercent:           c.SavingsPercent,
		SavingsPercentApplicable: c.SavingsPercentApplicable,
		SavingsPercentDisplay:    percentDisplay,
		Recommendation:           c.Recommendation.String(),
		RecommendationText:       c.RecommendationText(),
		BracketSize:              report.Sweep.BracketSize,
		Sweep: lo.Map(report.Sweep.Points, func(p BracketPoint, _ int) APIBracketPoint {
			return APIBracketPoint{
				Lower:          p.Lower,
				Upper:          p.Upper,
				Label:          p.Label,
				TaxA:           p.TaxA,
				TaxB:           p.TaxB,
				Savings:        p.Savings,
				TaxADisplay:    f.MoneyFull(p.TaxA),
				TaxBDisplay:    f.MoneyFull(p.TaxB),
				SavingsDisplay: f.MoneyFull(p.Savings),
			}
		}),
	}
}

func convertToAPITaxResult(regime Regime, result TaxResult, f *Formatter) *APITaxResult {
	taxable, tax := result.BreakdownTotals()
	return &APITaxResult{
		RegimeID:        regime.ID,
		RegimeName:      regime.Name,
		Exemption:       result.Exemption,
		TaxableIncome:   result.TaxableIncome,
		TotalTax:        result.TotalTax,
		TotalTaxDisplay: f.Money(result.TotalTax),
		EffectiveRate:   result.EffectiveRate(),
		MarginalRate:    MarginalRate(result.Income, regime),
		Breakdown: lo.Map(result.Breakdown, func(line TaxBreakdownLine, _ int) APIBreakdownLine {
			var upper *float64
			if !isUnboundedAmount(line.Upper) {
				upper = lo.ToPtr(line.Upper)
			}
			return APIBreakdownLine{
				Slab:           line.SlabName,
				Lower:          line.Lower,
				Upper:          upper,
				TaxableAmount:  line.TaxableAmount,
				Rate:           line.Rate,
				Tax:            line.Tax,
				RangeLabel:     f.Range(line.Lower, line.Upper),
				TaxableDisplay: f.MoneyFull(line.TaxableAmount),
				RateDisplay:    f.Rate(line.Rate),
				TaxDisplay:     f.MoneyFull(line.Tax),
			}
		}),
		GrandTotal: APIBreakdownLine{
			Slab:           "Grand Total",
			TaxableAmount:  taxable,
			Tax:            tax,
			RangeLabel:     "Grand Total",
			TaxableDisplay: f.MoneyFull(taxable),
			TaxDisplay:     f.MoneyFull(tax),
		},
	}
}

func isUnboundedAmount(v float64) bool {
	return Slab{Upper: v}.IsUnbounded()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		serverLog.WithError(err).Error("failed to encode response")
	}
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}

// sendJSONError sends a JSON error response
func sendJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APICompareResponse{
		Success: false,
		Error:   message,
	})
}
