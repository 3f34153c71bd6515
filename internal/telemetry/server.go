package telemetry

import (
	"context"
	"log/slog"
	"net/http"
)

// Server is the optional diagnostics listener. It is disjoint from the
// tool protocol channel and serves only metrics and liveness.
type Server struct {
	addr   string
	logger *slog.Logger
	srv    *http.Server
}

func NewServer(addr string, logger *slog.Logger) *Server {
	return &Server{addr: addr, logger: logger}
}

func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.Write([]byte(RenderPrometheus()))
	})

	s.srv = &http.Server{Addr: s.addr, Handler: mux}
	s.logger.Info("diagnostics server starting", "addr", s.addr)
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
