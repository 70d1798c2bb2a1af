// Status endpoint for running noise-diode operations: subarray
// inspection and Prometheus metrics, JSON only.
package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ndops/internal/subarray"
)

// Server exposes subarray status over HTTP.
type Server struct {
	sub subarray.Context
	log *slog.Logger
}

// NewServer creates a status server for sub.
func NewServer(sub subarray.Context, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{sub: sub, log: log}
}

// SubarrayStatus is the /subarray response body.
type SubarrayStatus struct {
	ID        string   `json:"id"`
	Simulated bool     `json:"simulated"`
	SubBand   string   `json:"sub_band,omitempty"`
	Antennas  []string `json:"antennas"`
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/subarray", s.handleSubarray)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.routes()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("admin shutdown", "err", err)
		}
	}()
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleSubarray(w http.ResponseWriter, r *http.Request) {
	status := SubarrayStatus{
		ID:        s.sub.ID(),
		Simulated: s.sub.Simulated(),
		Antennas:  subarray.Names(s.sub),
	}
	if b, err := s.sub.SubBand(); err == nil {
		status.SubBand = string(b)
	} else {
		s.log.Warn("sub-band query failed", "err", err)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
