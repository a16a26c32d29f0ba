package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/karandeol-26/VeriCura/docs/swagger" // registers the API document
	"github.com/karandeol-26/VeriCura/internal/app"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
	"github.com/karandeol-26/VeriCura/internal/render"
)

// Server is the HTTP + WebSocket API surface for VeriCura.
type Server struct {
	cfg          Config
	app          *app.Application
	orchestrator *app.Orchestrator
	router       chi.Router
	upgrader     websocket.Upgrader
	logger       logging.Logger
}

// NewServer creates a Server over an already built application.
func NewServer(cfg Config) (*Server, error) {
	if cfg.App == nil || cfg.App.Orch == nil {
		return nil, errors.New("server: nil application")
	}
	if cfg.ListenAddr == "" && cfg.App.Config != nil {
		cfg.ListenAddr = cfg.App.Config.ServerAddr
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	r := chi.NewRouter()
	s := &Server{
		cfg:          cfg,
		app:          cfg.App,
		orchestrator: cfg.App.Orch,
		router:       r,
		logger:       logger,
		upgrader: websocket.Upgrader{
			// The popup connects from an extension origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	s.routes()
	return s, nil
}

// Orchestrator returns the underlying orchestrator for advanced use (tests, etc.).
func (s *Server) Orchestrator() *app.Orchestrator {
	return s.orchestrator
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/sessions", s.optionsHandler("POST"))
	r.Options("/sessions/{id}", s.optionsHandler("DELETE"))
	r.Options("/sessions/{id}/scan", s.optionsHandler("POST"))
	r.Options("/sessions/{id}/analyze", s.optionsHandler("POST"))
	r.Options("/sessions/{id}/highlight", s.optionsHandler("POST"))
	r.Options("/sessions/{id}/report", s.optionsHandler("GET"))
	r.Options("/scan", s.optionsHandler("POST"))

	r.Get("/health", s.handleHealth)

	// Sessions
	r.Post("/sessions", s.handleCreateSession)
	r.Delete("/sessions/{id}", s.handleCloseSession)
	r.Post("/sessions/{id}/scan", s.handleScan)
	r.Post("/sessions/{id}/analyze", s.handleAnalyze)
	r.Post("/sessions/{id}/highlight", s.handleHighlight)
	r.Get("/sessions/{id}/report", s.handleReport)

	// Batch
	r.Post("/scan", s.handleBatchScan)

	// WebSocket for session events
	r.Get("/ws/sessions/{id}", s.handleSessionWS)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close shuts down the orchestrator. Components belong to the application.
func (s *Server) Close() {
	if s.orchestrator != nil {
		s.orchestrator.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// decodeOptional decodes a JSON body into v. An empty body is not an error.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// --- HTTP handlers ---

// handleHealth godoc
// @Summary Liveness and configuration summary
// @Tags meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if cfg := s.app.Config; cfg != nil {
		resp.DeepAnalysis = cfg.Analyzer.Configured()
		resp.Client = string(cfg.WebClient.Client)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Sessions

// handleCreateSession godoc
// @Summary Open a session on a URL or a bridge agent
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body PageRequest false "page to attach"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Router /sessions [post]
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var body PageRequest
	if err := decodeOptional(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	sess, err := s.orchestrator.CreateSession(nil)
	if err != nil {
		s.logger.Warn("creating session", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.attach(sess.ID(), body); err != nil {
		_ = s.orchestrator.CloseSession(sess.ID())
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, SessionResponse{ID: sess.ID()})
}

// attach points the session at the page named by req, if any.
func (s *Server) attach(id string, req PageRequest) error {
	var err error
	switch {
	case req.Agent != "":
		_, err = s.orchestrator.AttachAgent(id, req.Agent)
	case req.URL != "":
		_, err = s.orchestrator.OpenURL(id, req.URL)
	}
	if err != nil {
		s.logger.Warn("attaching page", logging.Field{Key: "session", Value: id}, logging.Field{Key: "error", Value: err.Error()})
	}
	return err
}

// handleCloseSession godoc
// @Summary Close a session
// @Tags sessions
// @Param id path string true "session id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.orchestrator.CloseSession(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// session resolves the {id} parameter or writes a 404.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *app.Session {
	id := chi.URLParam(r, "id")
	sess := s.orchestrator.GetSession(id)
	if sess == nil {
		s.logger.Warn("session not found", logging.Field{Key: "session", Value: id})
		writeError(w, http.StatusNotFound, app.ErrSessionNotFound.Error())
	}
	return sess
}

// handleScan godoc
// @Summary Scan the session page, optionally switching to another page first
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "session id"
// @Param request body PageRequest false "page to switch to"
// @Success 200 {object} app.ScanOutcome
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/scan [post]
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var body PageRequest
	if err := decodeOptional(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.attach(sess.ID(), body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := sess.Scan(r.Context())
	s.logger.Info("scanned", logging.Field{Key: "session", Value: sess.ID()}, logging.Field{Key: "kind", Value: string(out.Kind)})
	writeJSON(w, http.StatusOK, out)
}

// handleAnalyze godoc
// @Summary Run deep analysis on the last scan
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} app.AnalysisOutcome
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/analyze [post]
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	out := sess.DeepAnalyze(r.Context())
	s.logger.Info("analyzed", logging.Field{Key: "session", Value: sess.ID()}, logging.Field{Key: "kind", Value: string(out.Kind)})
	writeJSON(w, http.StatusOK, out)
}

// handleHighlight godoc
// @Summary Scroll to and pulse the element behind an issue or text
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "session id"
// @Param request body model.HighlightRequest true "what to highlight"
// @Success 200 {object} model.HighlightResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/highlight [post]
func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var req model.HighlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	writeJSON(w, http.StatusOK, sess.HighlightRequest(r.Context(), req))
}

// handleReport godoc
// @Summary Render the session report
// @Tags sessions
// @Produce json,text/markdown,text/html
// @Param id path string true "session id"
// @Param format query string false "json, md or html" Enums(json, md, html)
// @Success 200
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/report [get]
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	scan := sess.LastScan()
	if scan == nil {
		writeError(w, http.StatusConflict, "session has not been scanned")
		return
	}
	view := render.NewView(scan.URL, *scan, sess.Analysis())

	var (
		buf         bytes.Buffer
		err         error
		contentType string
	)
	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		writeJSON(w, http.StatusOK, map[string]any{"scan": view.Scan, "analysis": view.Analysis})
		return
	case "md", "markdown":
		contentType = "text/markdown; charset=utf-8"
		err = render.Markdown(&buf, view)
	case "html":
		contentType = "text/html; charset=utf-8"
		err = render.HTML(&buf, view)
	default:
		writeError(w, http.StatusBadRequest, "unknown format "+format)
		return
	}
	if err != nil {
		s.logger.Error("rendering report", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Batch

// handleBatchScan godoc
// @Summary Scan several URLs without a session
// @Tags scan
// @Accept json
// @Produce json
// @Param request body BatchScanRequest true "urls to scan"
// @Success 200 {array} app.BatchResult
// @Failure 400 {object} ErrorResponse
// @Router /scan [post]
func (s *Server) handleBatchScan(w http.ResponseWriter, r *http.Request) {
	var body BatchScanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(body.URLs) == 0 {
		writeError(w, http.StatusBadRequest, "no urls")
		return
	}
	scan := s.orchestrator.ScanURLs
	if body.Crawl {
		scan = s.orchestrator.CrawlScan
	}
	results, err := scan(r.Context(), body.URLs)
	if err != nil {
		s.logger.Warn("batch scan", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("batch scanned", logging.Field{Key: "count", Value: len(results)})
	writeJSON(w, http.StatusOK, results)
}

// WebSockets

// handleSessionWS godoc
// @Summary Stream session events over a websocket
// @Tags sessions
// @Param id path string true "session id"
// @Success 101
// @Router /ws/sessions/{id} [get]
func (s *Server) handleSessionWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	events, cancel, err := s.orchestrator.Subscribe(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	defer cancel()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	// The reader only notices the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.logger.Info("streaming session events", logging.Field{Key: "session", Value: id})
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}
