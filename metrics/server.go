package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsServer struct {
	srv *http.Server
}

// New builds a metrics server listening on addr. The server is not started
// until ListenAndServe is called. Every collector of this package is served,
// plus a build_info gauge labelled with the given service name.
func New(service string, addr string) (*MetricsServer, error) {
	mux := chi.NewRouter()
	mux.Handle("/metrics", Handler())

	if err := registerBuildInfo(service); err != nil {
		return nil, err
	}

	return &MetricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Handler serves the package registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func (s *MetricsServer) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func registerBuildInfo(service string) error {
	info := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "build_info",
		Help:        "service name of the running binary",
		ConstLabels: prometheus.Labels{"service": service},
	})
	info.Set(1)

	err := registry.Register(info)
	if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
		return nil
	}
	return err
}
