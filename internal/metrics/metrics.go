package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ObservationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "observations_total", Help: "Count of synthetic observations generated"},
		[]string{"symbol"},
	)
	AlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "alerts_total", Help: "Anomaly alerts raised"},
		[]string{"severity"},
	)
	WindowSize = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "window_size", Help: "Observations currently retained in the window"},
	)
	QueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "queries_total", Help: "Q&A queries served"},
	)
)

func init() {
	prometheus.MustRegister(ObservationsTotal, AlertsTotal, WindowSize, QueriesTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
