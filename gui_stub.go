//go:build !webview

package main

import "fmt"

// runEmbeddedUI is a stub for builds without the webview tag
func runEmbeddedUI(config *Config, f *Formatter) error {
	return fmt.Errorf("embedded UI not available in this build (rebuild with -tags webview). Use -web flag for external browser mode")
}

// runGUI is a stub for builds without the webview tag
func runGUI(config *Config, f *Formatter) error {
	return runEmbeddedUI(config, f)
}
