// ABOUTME: Minimal assistant backend serving /api/chat and /api/cancel
// ABOUTME: Records every request and echoes the last user text for E2E tests

package fakebackend

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/2389/assistant-client/internal/auth"
)

// RecordedRequest is one request accepted by the server.
type RecordedRequest struct {
	Method  string
	Path    string
	Header  http.Header
	Subject string
	Body    map[string]any
}

// ChatResponse is the body returned by /api/chat.
type ChatResponse struct {
	ThreadID  string `json:"threadId"`
	MessageID string `json:"messageId"`
	Echo      string `json:"echo"`
}

// CancelResponse is the body returned by /api/cancel.
type CancelResponse struct {
	ThreadID string `json:"threadId"`
	Status   string `json:"status"`
}

// Option configures a Server.
type Option func(*Server)

// WithVerifier requires a valid bearer token on every request.
func WithVerifier(v auth.TokenVerifier) Option {
	return func(s *Server) {
		s.verifier = v
	}
}

// Server is an http.Handler implementing the assistant backend endpoints.
type Server struct {
	logger   *slog.Logger
	verifier auth.TokenVerifier
	handler  http.Handler

	mu       sync.Mutex
	requests []RecordedRequest
}

// New creates a Server. A nil logger discards output.
func New(logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/cancel", s.handleCancel)

	var handler http.Handler = mux
	if s.verifier != nil {
		handler = auth.BearerMiddleware(s.verifier)(handler)
	}
	s.handler = handler

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Requests returns a copy of all recorded requests in arrival order.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, threadID, err := parseThreadRequest(r.Body)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.record(r, body)

	resp := ChatResponse{
		ThreadID:  threadID,
		MessageID: uuid.New().String(),
		Echo:      lastText(body["messages"]),
	}

	s.logger.Info("chat received",
		"thread_id", threadID,
		"message_id", resp.MessageID,
	)
	s.sendJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, threadID, err := parseThreadRequest(r.Body)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.record(r, body)

	s.logger.Info("cancel received", "thread_id", threadID)
	s.sendJSON(w, http.StatusOK, CancelResponse{ThreadID: threadID, Status: "cancelled"})
}

func (s *Server) record(r *http.Request, body map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, RecordedRequest{
		Method:  r.Method,
		Path:    r.URL.Path,
		Header:  r.Header.Clone(),
		Subject: auth.SubjectFromContext(r.Context()),
		Body:    body,
	})
}

// parseThreadRequest decodes a JSON object body and returns its threadId.
func parseThreadRequest(r io.Reader) (map[string]any, string, error) {
	var body map[string]any
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, "", errors.New("invalid JSON body")
	}

	threadID, _ := body["threadId"].(string)
	if threadID == "" {
		return nil, "", errors.New("threadId is required")
	}

	return body, threadID, nil
}

// lastText joins the text parts of the last message, or returns "".
func lastText(messages any) string {
	list, ok := messages.([]any)
	if !ok || len(list) == 0 {
		return ""
	}
	msg, ok := list[len(list)-1].(map[string]any)
	if !ok {
		return ""
	}
	parts, ok := msg["content"].([]any)
	if !ok {
		return ""
	}

	var texts []string
	for _, p := range parts {
		part, ok := p.(map[string]any)
		if !ok || part["type"] != "text" {
			continue
		}
		if text, ok := part["text"].(string); ok {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "\n")
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

// sendJSONError writes a JSON error response.
func (s *Server) sendJSONError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, map[string]string{"error": message})
}
