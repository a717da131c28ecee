package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"github.com/trmquang93/medium-writer-sub001/generator"
	"github.com/trmquang93/medium-writer-sub001/medium"
)

const (
	generateTimeout = 60 * time.Second
	exportTimeout   = 120 * time.Second
)

type Server struct {
	agent    *generator.Agent
	exporter *medium.Exporter
	store    *sessionStore
	logger   *log.Logger
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*generator.Session
}

func newStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*generator.Session)}
}

func (s *sessionStore) set(id string, sess *generator.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
}

func (s *sessionStore) get(id string) (*generator.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func New(agent *generator.Agent, exporter *medium.Exporter, logger *log.Logger) (*Server, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	if exporter == nil {
		return nil, errors.New("exporter required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		agent:    agent,
		exporter: exporter,
		store:    newStore(),
		logger:   logger,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/sessions", s.handleSessionCreate)
	mux.HandleFunc("/api/sessions/", s.handleSessionByID)
	mux.HandleFunc("/api/export", s.handleExport)
	mux.HandleFunc("/api/keys/validate", s.handleKeyValidate)
	mux.HandleFunc("/api/preview", s.handlePreview)
	return s.logMiddleware(mux)
}

// --- Handlers ---

type sessionCreateReq struct {
	Topic       string   `json:"topic"`
	Audience    string   `json:"audience"`
	Tone        string   `json:"tone"`
	TargetWords int      `json:"targetWords"`
	Notes       []string `json:"notes"`
}

type answersReq struct {
	Answers []generator.Answer `json:"answers"`
}

type reviseReq struct {
	Comment string `json:"comment"`
}

type exportReq struct {
	Content string     `json:"content"`
	Format  string     `json:"format"`
	Options exportOpts `json:"options"`
}

type exportOpts struct {
	GithubToken string `json:"githubToken"`
	CreateGists bool   `json:"createGists"`
}

type keyValidateReq struct {
	Provider string `json:"provider"`
	Key      string `json:"key"`
}

type previewReq struct {
	Markdown string `json:"markdown"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req sessionCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		http.Error(w, "topic is required", http.StatusBadRequest)
		return
	}
	idea := generator.Idea{
		Topic:       req.Topic,
		Audience:    req.Audience,
		Tone:        req.Tone,
		TargetWords: req.TargetWords,
		Notes:       req.Notes,
	}
	id := uuid.New().String()
	sess := generator.NewSession(id, idea, s.agent)
	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()
	if err := sess.Start(ctx); err != nil {
		httpError(w, err)
		return
	}
	s.store.set(id, sess)
	writeJSON(w, sess.Snapshot())
}

func (s *Server) handleSessionByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	if rest == "" {
		http.NotFound(w, r)
		return
	}
	id, action := rest, ""
	if i := strings.Index(rest, "/"); i >= 0 {
		id, action = rest[:i], rest[i+1:]
	}
	sess, ok := s.store.get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	if r.Method == http.MethodGet && action == "" {
		writeJSON(w, sess.Snapshot())
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch action {
	case "answers":
		var req answersReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sess.SetAnswers(req.Answers)
		writeJSON(w, sess.Snapshot())
	case "generate":
		ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
		defer cancel()
		draft, err := sess.Propose(ctx)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, map[string]generator.Draft{"draft": draft})
	case "revise":
		var req reviseReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
		defer cancel()
		draft, err := sess.Revise(ctx, req.Comment)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, map[string]generator.Draft{"draft": draft})
	default:
		http.NotFound(w, r)
	}
}

// handleExport runs the pipeline and always answers 200 with an
// ExportResult; validation failures travel in the payload, not as
// transport errors.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req exportReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	format := medium.FormatOptimized
	if req.Format != "" {
		format = medium.ExportFormat(req.Format)
	}
	ctx, cancel := context.WithTimeout(r.Context(), exportTimeout)
	defer cancel()
	result := s.exporter.Export(ctx, req.Content, format, medium.ExportOptions{
		GistToken:   req.Options.GithubToken,
		CreateGists: req.Options.CreateGists,
	})
	writeJSON(w, result)
}

func (s *Server) handleKeyValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req keyValidateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	provider := generator.Provider(req.Provider)
	if !provider.IsValid() {
		http.Error(w, "unknown provider", http.StatusBadRequest)
		return
	}
	valid, err := generator.ValidateKey(r.Context(), provider, req.Key)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"valid": valid})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req previewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	html, err := previewHTML(req.Markdown)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"html": html})
}

// --- Helpers ---

func previewHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, generator.ErrInvalidAPIKey):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, generator.ErrRateLimited):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	case errors.Is(err, context.DeadlineExceeded):
		http.Error(w, err.Error(), http.StatusGatewayTimeout)
	default:
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("[server] %s %s %s", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}
