// Package dashboard provides a web-based view of the project's schedule and
// earned-value figures.
package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/sazyar/sazyar/pkg/domain/evm"
	"github.com/sazyar/sazyar/pkg/domain/project"
)

//go:embed templates/*
var templatesFS embed.FS

// DataProvider provides data for the dashboard.
type DataProvider interface {
	GetProject() (*project.Project, error)
	GetReport() (*evm.Report, error)
}

// Server is the dashboard HTTP server.
type Server struct {
	addr     string
	provider DataProvider
	events   http.Handler
	server   *http.Server
	tmpl     *template.Template
}

// NewServer creates a new dashboard server. The events handler is optional;
// when set it is mounted at /events for live-reload streaming.
func NewServer(addr string, provider DataProvider, events http.Handler) (*Server, error) {
	funcMap := template.FuncMap{
		"statusClass": statusClass,
		"formatTime":  formatTime,
		"money":       formatMoney,
		"json":        toJSON,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Server{
		addr:     addr,
		provider: provider,
		events:   events,
		tmpl:     tmpl,
	}, nil
}

// Handler returns the routing mux. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /api/project", s.handleAPIProject)
	mux.HandleFunc("GET /api/analytics", s.handleAPIAnalytics)
	if s.events != nil {
		mux.Handle("GET /events", s.events)
	}
	return mux
}

// Start starts the dashboard server.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("Dashboard server starting on %s", s.addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// PageData holds data for template rendering.
type PageData struct {
	Title   string
	Project *project.Project
	Report  *evm.Report
	Stats   Stats
	Error   string
}

// Stats holds the headline figures shown above the task table.
type Stats struct {
	TotalTasks int
	Pending    int
	InProgress int
	Completed  int
	Delayed    int
	Completion float64
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := PageData{Title: "Dashboard"}

	p, err := s.provider.GetProject()
	if err != nil {
		data.Error = err.Error()
		s.render(w, "index.html", data)
		return
	}
	data.Project = p
	data.Stats = calculateStats(p)

	report, err := s.provider.GetReport()
	if err != nil {
		data.Error = err.Error()
	} else {
		data.Report = report
	}

	s.render(w, "index.html", data)
}

func (s *Server) handleAPIProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.provider.GetProject()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

func (s *Server) handleAPIAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := s.provider.GetReport()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func calculateStats(p *project.Project) Stats {
	stats := Stats{TotalTasks: len(p.Tasks)}

	for _, t := range p.Tasks {
		switch t.Status {
		case project.StatusPending:
			stats.Pending++
		case project.StatusInProgress:
			stats.InProgress++
		case project.StatusCompleted:
			stats.Completed++
		case project.StatusDelayed:
			stats.Delayed++
		}
	}

	if stats.TotalTasks > 0 {
		stats.Completion = float64(stats.Completed) / float64(stats.TotalTasks) * 100
	}

	return stats
}

// Template helper functions
func statusClass(status project.TaskStatus) string {
	switch status {
	case project.StatusPending:
		return "status-pending"
	case project.StatusInProgress:
		return "status-progress"
	case project.StatusCompleted:
		return "status-done"
	case project.StatusDelayed:
		return "status-delayed"
	default:
		return "status-unknown"
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

func toJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
