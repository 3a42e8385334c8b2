package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/placelist"
	"golang.org/x/time/rate"
)

// MaxRequestBytes caps the size of a /fetch request body.
const MaxRequestBytes = 1 << 20

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server shuts down.
const ShutdownTimeout = 5 * time.Second

// FetchRequest is the body of POST /fetch.
type FetchRequest struct {
	URL string `json:"url"`
}

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Server exposes a placelist.Scraper over HTTP.
//
//	POST /fetch    {"url": "..."} -> {"list_description": ..., "items": [...]}
//	GET  /healthz  -> 200
type Server struct {
	ln     net.Listener
	server *http.Server
	mux    *http.ServeMux

	// Bind address for the server's listener.
	Addr string

	// Scraper extracts a PlaceList for each request.
	Scraper placelist.Scraper

	// Limiter throttles /fetch requests. Every fetch drives a browser, so
	// bursts are rejected with 429 instead of queued. Nil disables limiting.
	Limiter *rate.Limiter

	Logger *slog.Logger
}

// NewServer returns a new instance of Server.
func NewServer() *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		Logger: slog.New(slog.DiscardHandler),
	}
	s.server = &http.Server{Handler: s}

	s.mux.HandleFunc("POST /fetch", s.handleFetch)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	return s
}

// Open begins listening on Addr and serves requests in the background.
func (s *Server) Open() (err error) {
	if s.Scraper == nil {
		return fmt.Errorf("server scraper required")
	}
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP routes requests to handlers.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	if s.Limiter != nil && !s.Limiter.Allow() {
		writeJSON(w, http.StatusTooManyRequests, ErrorResponse{Detail: "Too many requests"})
		return
	}

	var req FetchRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.Error(w, r, placelist.Errorf(placelist.EINVALID, "invalid request body: %v", err))
		return
	}
	if req.URL == "" {
		s.Error(w, r, placelist.Errorf(placelist.EINVALID, "url required"))
		return
	}

	s.Logger.Info("fetching url", "url", req.URL)
	list, err := s.Scraper.Scrape(r.Context(), req.URL)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Error writes err as a JSON error response. Invalid input maps to 422;
// anything else means the page could not be scraped and maps to 500.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	switch placelist.ErrorCode(err) {
	case placelist.EINVALID:
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Detail: placelist.ErrorMessage(err)})
	case placelist.ENOTFOUND:
		writeJSON(w, http.StatusNotFound, ErrorResponse{Detail: placelist.ErrorMessage(err)})
	default:
		s.Logger.Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: fmt.Sprintf("Failed to load URL: %v", err)})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
