//go:build !console

package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	webview "github.com/webview/webview_go"
)

// runEmbeddedUI starts the web server and opens an embedded browser window
func runEmbeddedUI(configFile, catalogFile string) error {
	config, _, err := loadConfigOrDefault(configFile)
	if err != nil {
		return err
	}
	catalog, err := ResolveCatalog(config, catalogFile)
	if err != nil {
		return err
	}
	SetCurrencySymbol(config.Currency())

	// Always bind to loopback with an automatic port
	ws := NewWebServer(config, catalog, "localhost:0")

	url, cleanup, err := ws.StartForEmbedded()
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	defer cleanup()

	// Create webview window (false = no debug mode)
	w := webview.New(false)
	defer w.Destroy()

	if icon, err := RenderAppIcon(64); err == nil {
		SetWindowIcon(w.Window(), icon)
	} else {
		log.WithError(err).Debug("App icon not rendered")
	}

	w.SetTitle("KiwiSaver Fund Comparison Calculator")
	w.SetSize(1280, 860, webview.HintNone)
	w.Navigate(url)

	// Run blocks until window is closed
	w.Run()

	return nil
}

// runGUI starts the graphical user interface (uses embedded browser)
func runGUI(configFile, catalogFile string) error {
	return runEmbeddedUI(configFile, catalogFile)
}
