package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"auto_wp_page_publisher/batch"
	"auto_wp_page_publisher/elementor"
	"auto_wp_page_publisher/generator"
	"auto_wp_page_publisher/publisher"
)

// Server exposes the batch driver over a small JSON API. The form that
// feeds it lives elsewhere; this side only starts runs and reports
// their progress.
type Server struct {
	agent  *generator.Agent
	cfg    publisher.Config
	store  *batchStore
	logger *log.Logger
}

type batchRun struct {
	runner *batch.Runner

	mu       sync.Mutex
	outcomes []batch.Outcome
}

func (b *batchRun) append(oc batch.Outcome) {
	b.mu.Lock()
	b.outcomes = append(b.outcomes, oc)
	b.mu.Unlock()
}

func (b *batchRun) snapshot() []batch.Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]batch.Outcome, len(b.outcomes))
	copy(out, b.outcomes)
	return out
}

type batchStore struct {
	mu   sync.Mutex
	runs map[string]*batchRun
}

func newStore() *batchStore {
	return &batchStore{runs: make(map[string]*batchRun)}
}

func (s *batchStore) set(id string, run *batchRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[id] = run
}

func (s *batchStore) get(id string) (*batchRun, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	return run, ok
}

func New(agent *generator.Agent, cfg publisher.Config, logger *log.Logger) (*Server, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		agent:  agent,
		cfg:    cfg,
		store:  newStore(),
		logger: logger,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/batches", s.handleBatchCreate)
	mux.HandleFunc("/api/batches/", s.handleBatchByID)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]string{"service": "page publisher", "api": "/api/batches"})
	})
	return s.logMiddleware(mux)
}

// --- Handlers ---

type batchCreateReq struct {
	Keywords    []string `json:"keywords"`
	Message     string   `json:"message"`
	Enterprise  string   `json:"enterprise"`
	Phone       string   `json:"phone"`
	SiteURL     string   `json:"site_url"`
	AutoPublish bool     `json:"auto_publish"`
	// Template is a builder node array, a full export document, or the
	// string "preset" for the built-in wireframe. Absent means no
	// template injection.
	Template json.RawMessage `json:"template,omitempty"`
}

type batchCreateResp struct {
	BatchID string `json:"batch_id"`
}

type outcomeView struct {
	Keyword      string  `json:"keyword"`
	Index        int     `json:"index"`
	Title        string  `json:"title,omitempty"`
	Published    bool    `json:"published"`
	PostID       int64   `json:"post_id,omitempty"`
	Link         string  `json:"link,omitempty"`
	ExportPath   string  `json:"export_path,omitempty"`
	Error        string  `json:"error,omitempty"`
	PublishError string  `json:"publish_error,omitempty"`
	Progress     float64 `json:"progress"`
}

type batchStatusResp struct {
	BatchID  string        `json:"batch_id"`
	Status   batch.Status  `json:"status"`
	Outcomes []outcomeView `json:"outcomes"`
}

func (s *Server) handleBatchCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req batchCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	template, err := parseTemplateField(req.Template)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := batch.Job{
		Keywords: req.Keywords,
		Message:  req.Message,
		Tags: generator.Tags{
			Enterprise: req.Enterprise,
			Phone:      req.Phone,
			SiteURL:    req.SiteURL,
		},
		Template:    template,
		AutoPublish: req.AutoPublish,
	}

	var pub batch.DraftPublisher
	if req.AutoPublish && s.cfg.HasCredentials() {
		p, err := publisher.New(s.cfg, nil, false, s.logger)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		pub = p
	}

	var exporter batch.Exporter
	if s.cfg.ExportDir != "" {
		exporter = batch.FileExporter{Dir: s.cfg.ExportDir}
	}

	runner := batch.NewRunner(s.agent, pub, exporter, s.logger)
	// The run outlives this request; keyword batches routinely take
	// minutes, so the caller polls instead of waiting.
	outcomes, err := runner.Run(context.Background(), job)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	run := &batchRun{runner: runner}
	s.store.set(id, run)
	go func() {
		for oc := range outcomes {
			run.append(oc)
		}
	}()

	writeJSON(w, batchCreateResp{BatchID: id})
}

func (s *Server) handleBatchByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/batches/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	run, ok := s.store.get(id)
	if !ok {
		http.Error(w, "batch not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	outcomes := run.snapshot()
	views := make([]outcomeView, 0, len(outcomes))
	for _, oc := range outcomes {
		views = append(views, toView(oc))
	}
	writeJSON(w, batchStatusResp{
		BatchID:  id,
		Status:   run.runner.Status(),
		Outcomes: views,
	})
}

func toView(oc batch.Outcome) outcomeView {
	v := outcomeView{
		Keyword:    oc.Keyword,
		Index:      oc.Index,
		Title:      oc.Post.Title,
		Published:  oc.Published,
		PostID:     oc.PostID,
		Link:       oc.Link,
		ExportPath: oc.ExportPath,
		Progress:   oc.Progress,
	}
	if oc.Err != nil {
		v.Error = oc.Err.Error()
	}
	if oc.PublishErr != nil {
		v.PublishError = oc.PublishErr.Error()
	}
	return v
}

func parseTemplateField(raw json.RawMessage) ([]*elementor.Node, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	if trimmed == `"preset"` {
		return elementor.Preset()
	}
	return elementor.ParseTemplate(trimmed)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
