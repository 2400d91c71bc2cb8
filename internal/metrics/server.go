package metrics

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quubnetwork/quub/internal/metrics/collectors"
)

// CreateMetricsServer registers the chain collectors plus any extra
// collectors on a fresh registry, binds addr and starts serving /metrics in
// the background. The returned server is handed back for graceful Shutdown.
func CreateMetricsServer(chain collectors.ChainReader, addr string, extra ...prometheus.Collector) (*http.Server, error) {
	chainCollectors, err := collectors.DefaultRegistry.CreateCollectors(chain)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create chain collectors")
	}

	registry := prometheus.NewRegistry()
	for _, collector := range append(chainCollectors, extra...) {
		if err := registry.Register(collector); err != nil {
			return nil, errors.WithMessage(err, "failed to register collector")
		}
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to listen on %s", addr)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server terminated", "error", err)
		}
	}()

	return server, nil
}
