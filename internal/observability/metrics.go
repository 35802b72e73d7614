package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	PagesFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migration_pages_fetched_total",
			Help: "Páginas baixadas da API de origem",
		},
		[]string{"endpoint"},
	)
	PageFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migration_page_failures_total",
			Help: "Páginas que encerraram a paginação com status diferente de 200",
		},
		[]string{"endpoint", "status"},
	)
	RecordsFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migration_records_fetched_total",
			Help: "Registros recebidos da API de origem",
		},
		[]string{"endpoint"},
	)
	RecordsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migration_records_processed_total",
			Help: "Registros transformados ou enviados, por resultado",
		},
		[]string{"stage", "result"},
	)
	TargetRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migration_target_requests_total",
			Help: "Chamadas à API de destino por operação e status",
		},
		[]string{"operation", "status"},
	)
)

var registerOnce sync.Once

func register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(PagesFetched, PageFailures, RecordsFetched, RecordsProcessed, TargetRequests)
	})
}

// Start serves /metrics on port for the lifetime of the run. An empty port
// only registers the collectors.
func Start(port string, log *zap.Logger) {
	register()
	if port == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(":"+port, mux); err != nil && log != nil {
			log.Warn("servidor de métricas encerrado", zap.String("port", port), zap.Error(err))
		}
	}()
}

// Processed counts one record outcome for a pipeline stage.
func Processed(stage, result string) {
	RecordsProcessed.WithLabelValues(stage, result).Inc()
}
