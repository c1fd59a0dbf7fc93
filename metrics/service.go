package metrics

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "prometheus")

// Service serves Prometheus metrics on /metrics and a liveness probe on /healthz.
type Service struct {
	server *http.Server

	mu         sync.Mutex
	failStatus error
}

// NewService sets up a metrics server for host:port.
func NewService(host string, port int) *Service {
	s := &Service{}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", s.healthzHandler)

	s.server = &http.Server{
		Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Addr returns the listen address.
func (s *Service) Addr() string {
	return s.server.Addr
}

func (s *Service) healthzHandler(w http.ResponseWriter, _ *http.Request) {
	if err := s.Status(); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte("ERROR " + err.Error() + "\n")); err != nil {
			log.Errorf("Could not write healthz body %v", err)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK\n")); err != nil {
		log.Errorf("Could not write healthz body %v", err)
	}
}

// Start the metrics server in the background.
func (s *Service) Start() {
	log.WithField("endpoint", s.server.Addr).Info("Starting service")
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Errorf("Could not listen to host:port :%s: %v", s.server.Addr, err)
			s.mu.Lock()
			s.failStatus = errors.Wrap(err, "metrics server stopped")
			s.mu.Unlock()
		}
	}()
}

// Stop the service gracefully.
func (s *Service) Stop() error {
	log.Info("Stopping service")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Status reports the error that stopped the server, if any.
func (s *Service) Status() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failStatus
}
