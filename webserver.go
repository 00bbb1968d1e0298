package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const maxRequestBody = 1 << 20

// WebServer holds the HTTP server configuration
type WebServer struct {
	config    *Config
	catalog   *Catalog
	addr      string
	exportDir string
}

// NewWebServer creates a new web server instance
func NewWebServer(config *Config, catalog *Catalog, addr string) *WebServer {
	if catalog == nil {
		def := DefaultCatalog
		catalog = &def
	}
	exportDir := "exports"
	if config != nil && config.Output.Directory != "" {
		exportDir = config.Output.Directory
	}
	return &WebServer{
		config:    config,
		catalog:   catalog,
		addr:      addr,
		exportDir: exportDir,
	}
}

// APIProjectionResponse is returned by /api/project
type APIProjectionResponse struct {
	Success    bool        `json:"success"`
	Error      string      `json:"error,omitempty"`
	Fields     []string    `json:"fields,omitempty"` // invalid input fields
	Comparison *Comparison `json:"comparison,omitempty"`
	TableTitle string      `json:"table_title,omitempty"`
	ChartTitle string      `json:"chart_title,omitempty"`
}

// APIRecommendResponse is returned by /api/recommend
type APIRecommendResponse struct {
	Years          int            `json:"years"`
	Recommendation Recommendation `json:"recommendation"`
}

// ExportResponse reports where an exported file was written
type ExportResponse struct {
	Success  bool   `json:"success"`
	FilePath string `json:"file_path,omitempty"`
	Message  string `json:"message"`
}

// OpenFolderRequest represents a request to open a folder
type OpenFolderRequest struct {
	FilePath string `json:"file_path"`
}

// Handler builds the router with logging middleware
func (ws *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", ws.handleIndex)
	mux.HandleFunc("/api/catalog", ws.handleGetCatalog)
	mux.HandleFunc("/api/config", ws.handleGetConfig)
	mux.HandleFunc("/api/recommend", ws.handleRecommend)
	mux.HandleFunc("/api/project", ws.handleProject)
	mux.HandleFunc("/api/chart.png", ws.handleChartPNG)
	mux.HandleFunc("/api/export-csv", ws.handleExportCSV)
	mux.HandleFunc("/api/export-pdf", ws.handleExportPDF)
	mux.HandleFunc("/api/download-pdf", ws.handleDownloadPDF)
	mux.HandleFunc("/api/open-folder", ws.handleOpenFolder)

	return requestLogger(mux)
}

// listen opens the listener and returns a browser-friendly URL for it
func (ws *WebServer) listen() (net.Listener, string, error) {
	// Use :0 for an automatically assigned port
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

// Start serves until ctx is cancelled, then shuts down gracefully.
// If openInBrowser is set the UI is opened once the listener is ready.
func (ws *WebServer) Start(ctx context.Context, openInBrowser bool) error {
	listener, url, err := ws.listen()
	if err != nil {
		return err
	}

	server := &http.Server{
		Handler:           ws.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.WithFields(log.Fields{"addr": listener.Addr().String(), "url": url}).Info("Starting web server")
	if openInBrowser {
		log.Infof("Opening %s in your browser...", url)
		go openBrowser(url)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// StartForEmbedded starts the server and returns the URL and a cleanup function.
// Unlike Start(), this does NOT open the browser and does NOT block.
// The caller is responsible for stopping the server via the cleanup function.
func (ws *WebServer) StartForEmbedded() (url string, cleanup func(), err error) {
	listener, url, err := ws.listen()
	if err != nil {
		return "", nil, err
	}

	log.WithField("addr", listener.Addr().String()).Info("Starting embedded web server")

	server := &http.Server{
		Handler:           ws.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Server error")
		}
	}()

	cleanup = func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("Embedded server shutdown")
		}
	}

	return url, cleanup, nil
}

// statusRecorder captures the response status for the access log
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// requestLogger tags each request with an ID and logs it when done
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		entry := log.WithFields(log.Fields{
			"request_id":  requestID,
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if rec.status >= 500 {
			entry.Error("HTTP request failed")
		} else {
			entry.Debug("HTTP request")
		}
	})
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

// handleGetCatalog returns the active fund catalog
func (ws *WebServer) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sendJSON(w, http.StatusOK, ws.catalog)
}

// handleGetConfig returns the current configuration
func (ws *WebServer) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if ws.config == nil {
		defaultConfig, err := LoadDefaultConfig()
		if err != nil {
			sendJSONError(w, err.Error())
			return
		}
		sendJSON(w, http.StatusOK, defaultConfig)
		return
	}

	sendJSON(w, http.StatusOK, ws.config)
}

// handleRecommend returns the recommended category for ?years=N
func (ws *WebServer) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	years, err := strconv.Atoi(r.URL.Query().Get("years"))
	if err != nil {
		sendJSONError(w, "years must be a whole number")
		return
	}

	sendJSON(w, http.StatusOK, APIRecommendResponse{
		Years:          years,
		Recommendation: RecommendForCatalog(years, ws.catalog),
	})
}

// decodeInputs reads projection inputs from the request body over the configured defaults
func (ws *WebServer) decodeInputs(w http.ResponseWriter, r *http.Request) (ProjectionInputs, error) {
	var in ProjectionInputs
	if ws.config != nil {
		in = ws.config.Inputs
	} else if def, err := LoadDefaultConfig(); err == nil {
		in = def.Inputs
	}
	in.Category = ""

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return in, fmt.Errorf("Invalid request body: %w", err)
	}
	if in.Category == "" {
		in.Category = DefaultCategory(in.InvestmentYears, ws.catalog)
	}
	return in, nil
}

// compare validates inputs and runs the projection.
// Returns the comparison or an error that is safe to show to the user.
func (ws *WebServer) compare(w http.ResponseWriter, r *http.Request) (*Comparison, error) {
	in, err := ws.decodeInputs(w, r)
	if err != nil {
		return nil, err
	}
	if err := ValidateInputs(in, ws.catalog); err != nil {
		return nil, err
	}
	return ComputeProjections(in, ws.catalog)
}

// handleProject runs a comparison and returns it as JSON
func (ws *WebServer) handleProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c, err := ws.compare(w, r)
	if err != nil {
		resp := APIProjectionResponse{Success: false, Error: err.Error()}
		var ve ValidationErrors
		if errors.As(err, &ve) {
			resp.Fields = ve.Fields()
		}
		sendJSON(w, http.StatusBadRequest, resp)
		return
	}

	log.WithFields(log.Fields{"category": c.Inputs.Category, "years": c.Inputs.InvestmentYears, "funds": len(c.Results)}).Debug("Projection computed")
	sendJSON(w, http.StatusOK, APIProjectionResponse{
		Success:    true,
		Comparison: c,
		TableTitle: TableTitle(c.Inputs.Category),
		ChartTitle: ChartTitle(c.Inputs.Category),
	})
}

// handleChartPNG renders the growth chart for the posted inputs
func (ws *WebServer) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c, err := ws.compare(w, r)
	if err != nil {
		sendJSONError(w, err.Error())
		return
	}

	width, height := 1000, 500
	if ws.config != nil && ws.config.Output.ChartWidth > 0 && ws.config.Output.ChartHeight > 0 {
		width, height = ws.config.Output.ChartWidth, ws.config.Output.ChartHeight
	}
	png, err := GenerateChartPNG(c, width, height)
	if err != nil {
		log.WithError(err).Error("Chart rendering failed")
		http.Error(w, "Failed to render chart: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}

// exportFile writes data into the export directory and returns the absolute path
func (ws *WebServer) exportFile(name string, write func(path string) error) (string, error) {
	if err := os.MkdirAll(ws.exportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create exports directory: %w", err)
	}
	filePath := filepath.Join(ws.exportDir, sanitizeFilename(name))
	if err := write(filePath); err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		absPath = filePath
	}
	return absPath, nil
}

func exportName(c *Comparison, ext string) string {
	return fmt.Sprintf("kiwisaver-%s-%dy-%s.%s", strings.ToLower(string(c.Inputs.Category)), c.Inputs.InvestmentYears,
		time.Now().Format("2006-01-02-150405"), ext)
}

// handleExportCSV saves the year-by-year table as CSV and returns the path
func (ws *WebServer) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c, err := ws.compare(w, r)
	if err != nil {
		sendJSON(w, http.StatusBadRequest, ExportResponse{Success: false, Message: err.Error()})
		return
	}

	absPath, err := ws.exportFile(exportName(c, "csv"), func(path string) error { return SaveCSV(c, path) })
	if err != nil {
		sendJSON(w, http.StatusInternalServerError, ExportResponse{Success: false, Message: "Failed to write CSV: " + err.Error()})
		return
	}

	log.WithField("file", absPath).Info("CSV exported")
	sendJSON(w, http.StatusOK, ExportResponse{
		Success:  true,
		FilePath: absPath,
		Message:  fmt.Sprintf("CSV saved to %s", absPath),
	})
}

// handleExportPDF generates the PDF report and saves it to the export directory
func (ws *WebServer) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c, err := ws.compare(w, r)
	if err != nil {
		sendJSON(w, http.StatusBadRequest, ExportResponse{Success: false, Message: err.Error()})
		return
	}

	absPath, err := ws.exportFile(exportName(c, "pdf"), func(path string) error { return SavePDFReport(c, path) })
	if err != nil {
		sendJSON(w, http.StatusInternalServerError, ExportResponse{Success: false, Message: "Failed to write PDF: " + err.Error()})
		return
	}

	log.WithField("file", absPath).Info("PDF exported")
	sendJSON(w, http.StatusOK, ExportResponse{
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

	c, err := ws.compare(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pdfBytes, err := GeneratePDFReport(c)
	if err != nil {
		http.Error(w, "Failed to generate PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName(c, "pdf")))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}

// exportSubdir returns the folder holding filePath, provided it lies inside the export directory
func (ws *WebServer) exportSubdir(filePath string) (string, error) {
	if filePath == "" {
		return "", errors.New("file_path is required")
	}
	root, err := filepath.Abs(ws.exportDir)
	if err != nil {
		return "", fmt.Errorf("resolve export directory: %w", err)
	}
	target, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", filePath, err)
	}
	dir := filepath.Dir(target)
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("only folders inside %s can be opened", root)
	}
	return dir, nil
}

// handleOpenFolder opens the folder containing the specified file in the system file browser
func (ws *WebServer) handleOpenFolder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req OpenFolderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, ExportResponse{Success: false, Message: "Invalid request: " + err.Error()})
		return
	}

	dir, err := ws.exportSubdir(req.FilePath)
	if err != nil {
		log.WithField("path", req.FilePath).Warn("Refused to open folder outside the export directory")
		sendJSON(w, http.StatusForbidden, ExportResponse{Success: false, Message: err.Error()})
		return
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", dir)
	case "windows":
		cmd = exec.Command("explorer", dir)
	default:
		cmd = exec.Command("xdg-open", dir)
	}

	if err := cmd.Start(); err != nil {
		sendJSON(w, http.StatusInternalServerError, ExportResponse{Success: false, Message: "Failed to open folder: " + err.Error()})
		return
	}

	sendJSON(w, http.StatusOK, ExportResponse{Success: true, Message: "Folder opened"})
}

func sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Failed to encode JSON response")
	}
}

// sendJSONError sends a JSON error response
func sendJSONError(w http.ResponseWriter, message string) {
	sendJSON(w, http.StatusBadRequest, APIProjectionResponse{
		Success: false,
		Error:   message,
	})
}

// openBrowser opens a URL or file in the default browser
func openBrowser(target string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		log.WithError(err).Warnf("Could not open browser, open %s manually", target)
	}
}
