// ABOUTME: HTTP server for the browser clock page
// ABOUTME: Serves embedded assets, the offline cache-worker and clock defaults
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/twtime/twclock/internal/clock"
	"github.com/twtime/twclock/internal/discovery"
	"github.com/twtime/twclock/internal/prefs"
	"github.com/twtime/twclock/internal/version"
)

//go:embed assets
var assets embed.FS

// Assets cached by the service worker for offline loads
var offlineAssets = []string{
	"./",
	"./index.html",
	"./app.js",
	"./manifest.json",
	"./api/info",
	"https://fonts.googleapis.com/css2?family=Major+Mono+Display&family=Sixtyfour&family=Orbitron&family=Share+Tech+Mono&family=VT323&display=swap",
	"https://fonts.googleapis.com/css2?family=Material+Symbols+Outlined",
}

// Config holds server configuration
type Config struct {
	Port       int
	Name       string
	EnableMDNS bool
	Debug      bool
}

// Info describes this server and the clock defaults the page starts from
type Info struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Defaults Defaults `json:"defaults"`
}

// Defaults mirrors the engine and preference constants
type Defaults struct {
	TZOffsetMillis       int64      `json:"tz_offset_ms"`
	BurnInDistance       float64    `json:"burnin_distance"`
	BurnInIntervalMillis int64      `json:"burnin_interval_ms"`
	Color                string     `json:"color"`
	DefaultGlow          string     `json:"default_glow"`
	Font                 string     `json:"font"`
	Fonts                []FontInfo `json:"fonts"`
}

// FontInfo is one entry of the font registry
type FontInfo struct {
	ID     string `json:"id"`
	Family string `json:"family"`
	Size   string `json:"size"`
}

// Server serves the clock page
type Server struct {
	config   Config
	serverID string

	httpServer *http.Server
	mux        *http.ServeMux
	worker     []byte

	mdnsManager *discovery.Manager

	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates a new server instance
func New(config Config) (*Server, error) {
	s := &Server{
		config:   config,
		serverID: uuid.New().String(),
		mux:      http.NewServeMux(),
		stopChan: make(chan struct{}),
	}

	worker, err := renderWorker(version.Version)
	if err != nil {
		return nil, err
	}
	s.worker = worker

	static, err := fs.Sub(assets, "assets")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded assets: %w", err)
	}

	s.mux.HandleFunc("/sw.js", s.handleWorker)
	s.mux.HandleFunc("/api/info", s.handleInfo)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.Handle("/", http.FileServer(http.FS(static)))

	return s, nil
}

// ID returns the per-process server identifier
func (s *Server) ID() string {
	return s.serverID
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	if s.config.Debug {
		return logRequests(s.mux)
	}
	return s.mux
}

// Start serves until Stop is called or the listener fails
func (s *Server) Start() error {
	log.Printf("Server starting: %s (ID: %s)", s.config.Name, s.serverID)

	if s.config.EnableMDNS {
		s.mdnsManager = discovery.NewManager(discovery.Config{
			ServiceName: s.config.Name,
			Port:        s.config.Port,
			Text: []string{
				"path=/",
				"id=" + s.serverID,
				"version=" + version.Version,
			},
		})

		if err := s.mdnsManager.Advertise(); err != nil {
			log.Printf("Failed to start mDNS advertisement: %v", err)
		} else {
			log.Printf("mDNS advertisement started")
		}
	}

	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("HTTP server listening on %s", addr)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-s.stopChan:
		log.Printf("Server shutting down...")
	case err := <-errChan:
		log.Printf("HTTP server error: %v", err)
		serverErr = err
	}

	if s.mdnsManager != nil {
		s.mdnsManager.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Printf("Server stopped cleanly")

	if serverErr != nil {
		return fmt.Errorf("HTTP server failed: %w", serverErr)
	}
	return nil
}

// Stop stops the server
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// Info returns the document served at /api/info
func (s *Server) Info() Info {
	fonts := make([]FontInfo, len(prefs.Fonts))
	for i, f := range prefs.Fonts {
		fonts[i] = FontInfo{ID: f.ID, Family: f.Family, Size: f.Size.CSS()}
	}

	return Info{
		ID:      s.serverID,
		Name:    s.config.Name,
		Version: version.Version,
		Defaults: Defaults{
			TZOffsetMillis:       clock.DefaultOffset.Milliseconds(),
			BurnInDistance:       clock.BurnInDistance,
			BurnInIntervalMillis: clock.BurnInInterval.Milliseconds(),
			Color:                prefs.DefaultColor,
			DefaultGlow:          prefs.DefaultGlow().CSS(),
			Font:                 prefs.DefaultFont().ID,
			Fonts:                fonts,
		},
	}
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Info()); err != nil {
		log.Printf("Error encoding info: %v", err)
	}
}

func (s *Server) handleWorker(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	// Browsers must revalidate the worker to pick up a new cache name
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(s.worker); err != nil {
		log.Printf("Error writing service worker: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// CacheName is the service worker cache for a release
func CacheName(v string) string {
	return "twclock-cache-" + v
}

// renderWorker fills the service worker template for a release
func renderWorker(v string) ([]byte, error) {
	tmpl, err := template.ParseFS(assets, "assets/sw.js.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse service worker: %w", err)
	}

	name, err := json.Marshal(CacheName(v))
	if err != nil {
		return nil, err
	}
	list, err := json.Marshal(offlineAssets)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string{
		"CacheName": string(name),
		"Assets":    string(list),
	}); err != nil {
		return nil, fmt.Errorf("failed to render service worker: %w", err)
	}
	return buf.Bytes(), nil
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[DEBUG] %s %s from %s (%v)", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	})
}
