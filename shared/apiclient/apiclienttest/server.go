// Package apiclienttest runs an in-memory implementation of the account API
// for tests and local development. It records every request it receives.
package apiclienttest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/typewell/typewell/shared/jwt"
)

// Request is a snapshot of one received request.
type Request struct {
	Method  string
	Path    string
	Header  http.Header
	Body    []byte
	Cookies []*http.Cookie
}

// Recorder keeps received requests in arrival order.
type Recorder struct {
	mu       sync.Mutex
	requests []Request
}

func (rec *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		rec.mu.Lock()
		rec.requests = append(rec.requests, Request{
			Method:  r.Method,
			Path:    r.URL.EscapedPath(),
			Header:  r.Header.Clone(),
			Body:    body,
			Cookies: r.Cookies(),
		})
		rec.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (rec *Recorder) Requests() []Request {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]Request(nil), rec.requests...)
}

func (rec *Recorder) Last() (Request, bool) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.requests) == 0 {
		return Request{}, false
	}
	return rec.requests[len(rec.requests)-1], true
}

func (rec *Recorder) Reset() {
	rec.mu.Lock()
	rec.requests = nil
	rec.mu.Unlock()
}

// Server is a running fake API.
type Server struct {
	*httptest.Server
	*Recorder
	Store *Store
}

// NewServer starts a fake API on a loopback port. Close it when done.
func NewServer() *Server {
	rec := &Recorder{}
	store := NewStore()
	auth := NewAuth(jwt.New("apiclienttest", time.Hour), false)
	h := NewHandler(store, auth)
	return &Server{
		Server:   httptest.NewServer(NewRouter(h, rec.Middleware)),
		Recorder: rec,
		Store:    store,
	}
}
