package demoserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/karandeol-26/VeriCura/internal/logging"
)

var controlPanel = template.Must(template.New("control").Parse(controlPanelHTML))

// DemoServer serves sample health articles whose content can be switched
// between versions while a session is open on them.
type DemoServer struct {
	cfg      Config
	pages    map[string]PageDefinition
	versions map[string]int // path -> current version
	mu       sync.RWMutex
	logger   logging.Logger
}

// NewDemoServer creates a new demo server instance.
func NewDemoServer(cfg Config, logger logging.Logger) (*DemoServer, error) {
	if logger == nil {
		return nil, errors.New("demoserver: nil logger")
	}
	if cfg.InitialVersion < 1 {
		cfg.InitialVersion = 1
	}
	pageMap := make(map[string]PageDefinition)
	versions := make(map[string]int)

	for _, p := range GetAllPages() {
		pageMap[p.Path] = p
		versions[p.Path] = cfg.InitialVersion
	}

	return &DemoServer{
		cfg:      cfg,
		pages:    pageMap,
		versions: versions,
		logger:   logger.With(logging.Field{Key: "component", Value: "demoserver"}),
	}, nil
}

// Handler returns the routes of the demo site.
func (s *DemoServer) Handler() http.Handler {
	r := chi.NewRouter()

	for path := range s.pages {
		r.Get(path, s.pageHandler(path))
	}

	// Control panel for version switching
	r.Get("/demo/control", s.controlPanelHandler)
	r.Post("/demo/set-version", s.setVersionHandler)
	r.Get("/demo/get-versions", s.getVersionsHandler)
	r.Post("/demo/bump-all", s.bumpAllVersionsHandler)
	r.Post("/demo/reset", s.resetVersionsHandler)

	return r
}

// Start listens on the configured port until the server fails.
func (s *DemoServer) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("demo server starting",
		logging.Field{Key: "url", Value: "http://localhost" + addr},
		logging.Field{Key: "control_panel", Value: "http://localhost" + addr + "/demo/control"})
	return http.ListenAndServe(addr, s.Handler())
}

// currentVersion returns the page's selected version, falling back to the
// closest lower version that exists.
func currentVersion(def PageDefinition, version int) PageVersion {
	for v := version; v >= 1; v-- {
		if pv, ok := def.Versions[v]; ok {
			return pv
		}
	}
	return def.Versions[1]
}

func maxVersion(def PageDefinition) int {
	maxV := 1
	for v := range def.Versions {
		maxV = max(maxV, v)
	}
	return maxV
}

// pageHandler returns a handler for a specific page path.
func (s *DemoServer) pageHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		pageDef, ok := s.pages[path]
		version := s.versions[path]
		s.mu.RUnlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		pv := currentVersion(pageDef, version)

		for k, v := range pv.Headers {
			w.Header().Set(k, v)
		}
		contentType := pv.ContentType
		if contentType == "" {
			contentType = "text/html; charset=utf-8"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Demo-Version", strconv.Itoa(version))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(pv.HTML))
	}
}

// controlPanelHandler serves the control panel for version management.
func (s *DemoServer) controlPanelHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := struct {
		Pages    map[string]PageDefinition
		Versions map[string]int
		Port     int
	}{
		Pages:    s.pages,
		Versions: s.versions,
		Port:     s.cfg.Port,
	}
	w.Header().Set("Content-Type", "text/html")
	if err := controlPanel.Execute(w, data); err != nil {
		s.logger.Warn("rendering control panel", logging.Field{Key: "error", Value: err.Error()})
	}
}

// setVersionHandler sets the version for a specific page.
func (s *DemoServer) setVersionHandler(w http.ResponseWriter, r *http.Request) {
	path := r.FormValue("path")
	version, err := strconv.Atoi(r.FormValue("version"))
	if err != nil || version < 1 {
		http.Error(w, "Invalid version number", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	_, ok := s.pages[path]
	if ok {
		s.versions[path] = version
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "Unknown page", http.StatusNotFound)
		return
	}
	s.logger.Info("page version set", logging.Field{Key: "path", Value: path}, logging.Field{Key: "version", Value: version})

	writeJSON(w, map[string]any{
		"success": true,
		"path":    path,
		"version": version,
	})
}

// PageInfo describes one page for the control panel API.
type PageInfo struct {
	Path              string `json:"path"`
	Description       string `json:"description"`
	CurrentVersion    int    `json:"current_version"`
	AvailableVersions []int  `json:"available_versions"`
}

// getVersionsHandler returns the current versions of all pages, by path.
func (s *DemoServer) getVersionsHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	pages := make([]PageInfo, 0, len(s.pages))
	for path, pageDef := range s.pages {
		versions := make([]int, 0, len(pageDef.Versions))
		for v := range pageDef.Versions {
			versions = append(versions, v)
		}
		slices.Sort(versions)
		pages = append(pages, PageInfo{
			Path:              path,
			Description:       pageDef.Description,
			CurrentVersion:    s.versions[path],
			AvailableVersions: versions,
		})
	}
	s.mu.RUnlock()

	slices.SortFunc(pages, func(a, b PageInfo) int {
		switch {
		case a.Path < b.Path:
			return -1
		case a.Path > b.Path:
			return 1
		}
		return 0
	})
	writeJSON(w, pages)
}

// bumpAllVersionsHandler increments the version of all pages, capped at
// each page's newest version.
func (s *DemoServer) bumpAllVersionsHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	for path := range s.versions {
		s.versions[path] = min(s.versions[path]+1, maxVersion(s.pages[path]))
	}
	s.mu.Unlock()

	writeJSON(w, map[string]any{
		"success": true,
		"message": "All versions bumped",
	})
}

// resetVersionsHandler resets all pages to version 1.
func (s *DemoServer) resetVersionsHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	for path := range s.versions {
		s.versions[path] = 1
	}
	s.mu.Unlock()

	writeJSON(w, map[string]any{
		"success": true,
		"message": "All versions reset to 1",
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

const controlPanelHTML = `<!DOCTYPE html>
<html>
<head>
    <title>VeriCura Demo Site Control Panel</title>
    <style>
        body { font-family: system-ui, -apple-system, sans-serif; max-width: 1200px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
        h1 { color: #333; border-bottom: 2px solid #007bff; padding-bottom: 10px; }
        .page-card { background: white; border-radius: 8px; padding: 20px; margin: 15px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .page-header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 10px; }
        .page-path { font-size: 1.2em; font-weight: bold; color: #007bff; text-decoration: none; }
        .page-path:hover { text-decoration: underline; }
        .page-desc { color: #666; margin: 5px 0; }
        .version-controls { display: flex; gap: 10px; align-items: center; margin-top: 10px; }
        .version-btn { padding: 8px 16px; border: none; border-radius: 4px; cursor: pointer; font-size: 14px; }
        .version-btn:hover { opacity: 0.9; }
        .version-btn.active { background: #007bff; color: white; }
        .version-btn.inactive { background: #e9ecef; color: #333; }
        .current-version { font-weight: bold; color: #28a745; }
        .global-controls { background: #fff3cd; padding: 20px; border-radius: 8px; margin-bottom: 20px; }
        .global-controls h2 { margin-top: 0; color: #856404; }
        .global-btn { padding: 10px 20px; margin-right: 10px; border: none; border-radius: 4px; cursor: pointer; font-size: 14px; }
        .bump-btn { background: #28a745; color: white; }
        .reset-btn { background: #dc3545; color: white; }
        .status { margin-top: 10px; padding: 10px; border-radius: 4px; display: none; }
        .status.success { background: #d4edda; color: #155724; display: block; }
        .status.error { background: #f8d7da; color: #721c24; display: block; }
        .info-box { background: #e7f3ff; padding: 15px; border-radius: 8px; margin-bottom: 20px; border-left: 4px solid #007bff; }
    </style>
</head>
<body>
    <h1>VeriCura Demo Site Control Panel</h1>
    
    <div class="info-box">
        <strong>How to use:</strong> Change page versions to simulate an article being edited. 
        Scan a page in a VeriCura session, switch its version, then scan again to see the score move.
    </div>
    
    <div class="global-controls">
        <h2>Global Controls</h2>
        <button class="global-btn bump-btn" onclick="bumpAllVersions()">Bump All Versions</button>
        <button class="global-btn reset-btn" onclick="resetAllVersions()">Reset All to v1</button>
        <div id="global-status" class="status"></div>
    </div>
    
    <h2>Pages</h2>
    {{range $path, $page := .Pages}}
    <div class="page-card">
        <div class="page-header">
            <a href="{{$path}}" target="_blank" class="page-path">{{$path}}</a>
            <span class="current-version">Current: v{{index $.Versions $path}}</span>
        </div>
        <div class="page-desc">{{$page.Description}}</div>
        <div class="version-controls">
            <span>Set version:</span>
            {{range $v, $_ := $page.Versions}}
            <button class="version-btn {{if eq (index $.Versions $path) $v}}active{{else}}inactive{{end}}" 
                    onclick="setVersion('{{$path}}', {{$v}}, this)">
                v{{$v}}
            </button>
            {{end}}
        </div>
    </div>
    {{end}}
    
    <script>
        function setVersion(path, version, btn) {
            fetch('/demo/set-version', {
                method: 'POST',
                headers: {'Content-Type': 'application/x-www-form-urlencoded'},
                body: 'path=' + encodeURIComponent(path) + '&version=' + version
            })
            .then(r => r.json())
            .then(data => {
                if (data.success) {
                    // Update button states
                    const card = btn.closest('.page-card');
                    card.querySelectorAll('.version-btn').forEach(b => {
                        b.classList.remove('active');
                        b.classList.add('inactive');
                    });
                    btn.classList.remove('inactive');
                    btn.classList.add('active');
                    card.querySelector('.current-version').textContent = 'Current: v' + version;
                }
            });
        }
        
        function bumpAllVersions() {
            fetch('/demo/bump-all', {method: 'POST'})
            .then(r => r.json())
            .then(data => {
                showGlobalStatus(data.success, data.message);
                if (data.success) location.reload();
            });
        }
        
        function resetAllVersions() {
            fetch('/demo/reset', {method: 'POST'})
            .then(r => r.json())
            .then(data => {
                showGlobalStatus(data.success, data.message);
                if (data.success) location.reload();
            });
        }
        
        function showGlobalStatus(success, message) {
            const el = document.getElementById('global-status');
            el.textContent = message;
            el.className = 'status ' + (success ? 'success' : 'error');
        }
    </script>
</body>
</html>`
