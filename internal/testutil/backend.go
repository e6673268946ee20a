package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedRequest is what the fake backend saw for one call.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	ContentType   string
	Body          []byte
}

// Backend is a scriptable stand-in for the REST API, served by httptest.
type Backend struct {
	*httptest.Server

	mux      *http.ServeMux
	mu       sync.Mutex
	requests []RecordedRequest
}

// NewBackend starts a fake backend that is closed when the test ends.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{mux: http.NewServeMux()}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          body,
	})
	b.mu.Unlock()
	r.Body = io.NopCloser(bytes.NewReader(body))
	b.mux.ServeHTTP(w, r)
}

// Handle registers a handler using net/http pattern syntax, e.g. "GET /admin/users".
func (b *Backend) Handle(pattern string, h http.HandlerFunc) {
	b.mux.HandleFunc(pattern, h)
}

// Requests returns a copy of every call received so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// LastRequest returns the most recent call, or the zero value.
func (b *Backend) LastRequest() RecordedRequest {
	reqs := b.Requests()
	if len(reqs) == 0 {
		return RecordedRequest{}
	}
	return reqs[len(reqs)-1]
}

// Envelope writes a success body in the {data, message} convention.
func Envelope(w http.ResponseWriter, status int, data any, message string) {
	body := map[string]any{"data": data}
	if message != "" {
		body["message"] = message
	}
	writeJSON(w, status, body)
}

// Failure writes a failure body in the {message, errors} convention.
func Failure(w http.ResponseWriter, status int, message string, fields map[string][]string) {
	body := map[string]any{"message": message}
	if fields != nil {
		body["errors"] = fields
	}
	writeJSON(w, status, body)
}

// Respond returns a handler that always writes the given success envelope.
func Respond(status int, data any, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { Envelope(w, status, data, message) }
}

// Reject returns a handler that always writes the given failure body.
func Reject(status int, message string, fields map[string][]string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { Failure(w, status, message, fields) }
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
