package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"CalmBoard/internal/analysis"
)

const maxBodySize = 10 << 20

// Server exposes an Analyzer over HTTP and WebSocket.
type Server struct {
	analyzer *Analyzer
	upgrader websocket.Upgrader
}

// NewServer wraps a.
func NewServer(a *Analyzer) *Server {
	return &Server{
		analyzer: a,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 5 * time.Second,
			CheckOrigin:      func(*http.Request) bool { return true },
		},
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, analysis.Response{Success: true, Message: "ok"})
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/save-drawing", s.handleSave)
	})
	r.Get("/ws/analyze", s.handleWebSocket)
	return r
}

func decodePayload(w http.ResponseWriter, r *http.Request) (analysis.Payload, error) {
	var p analysis.Payload
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&p)
	return p, err
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, analysis.Response{Error: err.Error()})
		return
	}
	fb := s.analyzer.Analyze(p)
	log.Printf("[SERVER] Analyzed %d strokes, %d colors (request %s)",
		len(p.Strokes), len(p.Colors), middleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusOK, analysis.Response{Success: true, Feedback: &fb})
}

// handleSave acknowledges a drawing without keeping it.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if _, err := decodePayload(w, r); err != nil {
		writeJSON(w, http.StatusBadRequest, analysis.Response{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, analysis.Response{
		Success: true,
		Message: "Your artwork has been saved! 🎨",
	})
}

// handleWebSocket answers every payload message with one response message.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[SERVER] WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBodySize)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[SERVER] WebSocket error: %v", err)
			}
			return
		}
		var resp analysis.Response
		var p analysis.Payload
		if err := json.Unmarshal(data, &p); err != nil {
			resp = analysis.Response{Error: err.Error()}
		} else {
			fb := s.analyzer.Analyze(p)
			resp = analysis.Response{Success: true, Feedback: &fb}
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.Printf("[SERVER] WebSocket write error: %v", err)
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[SERVER] Error encoding response: %v", err)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
