package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Tax Regime Comparator

Computes progressive slab tax for one annual income under two tax regimes,
shows the slab-by-slab breakdown, the savings of switching and a
recommendation, and sweeps every income bracket from zero up to the income
to show how the savings evolve.

MODES:
  CONSOLE (default)
    Prints the comparison, both breakdown tables and the bracket sweep.
    Prompts for the income when -income is not given.

  REPORTS (-html, -pdf, -csv, -json)
    Writes the same comparison as a standalone HTML page with charts, a PDF
    document, a CSV of the bracket sweep, or JSON on stdout.

  WEB (-web, -ui)
    Serves an interactive page with an income slider, presets and charts,
    either in the external browser or in an embedded window.

Income accepts plain numbers or suffixes: 1500000, 15L, 15 lakh, 1.5cr, 900k.

Usage:
  %s [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %s                             Interactive income prompt
  %s -income 15L                 Compare at 15 lakh
  %s -income 15L -bracket 50000  Sweep in 50k brackets
  %s -income 2cr -html out.html  Generate HTML report
  %s -income 2cr -pdf out.pdf    Generate PDF report
  %s -income 2cr -csv exports    Export bracket sweep as CSV
  %s -income 15L -json           Print the comparison as JSON
  %s -web                        Web server mode (opens external browser)
  %s -web -addr :8080            Web server on specific port
  %s -ui                         Embedded window (needs -tags webview build)
  %s -init-config                Write the default config.yaml

Configuration:
  regime_a / regime_b pick the regimes (known: 2024-25, 2025-26).
  sweep.bracket_size sets the bracket step (default one lakh).
  format.* controls the currency symbol, grouping language and suffixes.
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	}

	// Command line flags
	configFile := flag.String("config", "config.yaml", "Path to YAML configuration file")
	incomeFlag := flag.String("income", "", "Annual income to compare (e.g. 1500000, 15L, 1.5cr)")
	bracketSize := flag.Float64("bracket", 0, "Bracket size for the sweep (default from config, one lakh)")
	htmlFile := flag.String("html", "", "Write an HTML report to this file")
	pdfFile := flag.String("pdf", "", "Write a PDF report to this file")
	csvDir := flag.String("csv", "", "Export the bracket sweep as CSV into this directory")
	jsonOutput := flag.Bool("json", false, "Print the comparison as JSON on stdout")
	webMode := flag.Bool("web", false, "Start web server mode (opens external browser)")
	uiMode := flag.Bool("ui", false, "Start embedded browser mode (webview window)")
	webAddr := flag.String("addr", "", "Web server address (default from config, use :0 for auto port)")
	logLevel := flag.String("log.level", "", "Log level: trace, debug, info, warn, error, critical, off")
	initConfig := flag.Bool("init-config", false, "Write the default configuration to -config and exit")
	flag.Parse()

	config, usedDefaults, err := LoadConfigOrDefault(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	level := config.Log.Level
	if *logLevel != "" {
		level = *logLevel
	}
	if err := setupLogging(level); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if usedDefaults {
		log.WithField("config", *configFile).Debug("config file not found, using defaults")
	}

	if *initConfig {
		if err := SaveConfig(config, *configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration saved to %s\n", *configFile)
		return
	}

	if err := applyBracketFlag(config, *bracketSize); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := NewFormatter(config.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Embedded browser mode
	if *uiMode {
		if err := runGUI(config, f); err != nil {
			fmt.Fprintf(os.Stderr, "Embedded UI error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Web server mode (external browser)
	if *webMode {
		addr := config.Server.Addr
		if *webAddr != "" {
			addr = *webAddr
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := NewWebServer(config, f, addr)
		if err := server.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Web server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	income, err := resolveIncome(*incomeFlag, config, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: Invalid income input! %v\n", err)
		os.Exit(1)
	}

	report, err := BuildReport(income, config, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.WithFields(logrus.Fields{
		"calculation_id": report.CalculationID,
		"income":         income,
		"savings":        report.Comparison.Savings,
	}).Debug("comparison complete")

	if *jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(convertToAPIResponse(report, f)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	wroteFile := false
	if *htmlFile != "" {
		if err := GenerateHTMLReport(report, f, *htmlFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating HTML report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("HTML report saved to %s\n", *htmlFile)
		wroteFile = true
	}
	if *pdfFile != "" {
		data, err := GenerateComparisonPDFReport(report, f)
		if err == nil {
			err = os.WriteFile(*pdfFile, data, 0644)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating PDF report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("PDF report saved to %s\n", *pdfFile)
		wroteFile = true
	}
	if *csvDir != "" {
		path, err := ExportSweepCSV(report, *csvDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Bracket sweep saved to %s\n", path)
		wroteFile = true
	}

	if !wroteFile {
		PrintReport(os.Stdout, report, f)
	}
}

// resolveIncome parses the -income flag, or prompts for it when the flag is empty
func resolveIncome(raw string, config *Config, f *Formatter) (float64, error) {
	if raw == "" {
		return NewIncomePrompter(os.Stdin, os.Stdout, config, f).Prompt()
	}
	return ParseIncome(raw)
}

// applyBracketFlag overrides the sweep step; zero keeps the configured one
func applyBracketFlag(config *Config, size float64) error {
	if size == 0 {
		return nil
	}
	if math.IsNaN(size) || math.IsInf(size, 0) || size < 0 {
		return fmt.Errorf("%w: must be a positive number (got %g)", ErrInvalidBracketSize, size)
	}
	config.Sweep.BracketSize = size
	return nil
}

// openBrowser opens the specified URL or file in the default browser
func openBrowser(target string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", target)
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", target)
	default:
		log.Warnf("Cannot open browser on %s", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		log.WithError(err).Warn("Error opening browser")
	}
}
