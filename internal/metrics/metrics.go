package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	RowsProcessed     *prometheus.CounterVec
	RowsSkipped       *prometheus.CounterVec
	FilesUnrecognized prometheus.Counter
	OrdersByStatus    *prometheus.GaugeVec
	ReconcileDuration prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	rowsProcessed := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vmrecon_rows_processed_total"}, []string{"kind"})
	rowsSkipped := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vmrecon_rows_skipped_total"}, []string{"kind"})
	filesUnrecognized := prometheus.NewCounter(
		prometheus.CounterOpts{Name: "vmrecon_files_unrecognized_total"})
	ordersByStatus := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "vmrecon_orders_by_status"}, []string{"status"})
	reconcileDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vmrecon_reconcile_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(rowsProcessed, rowsSkipped, filesUnrecognized, ordersByStatus, reconcileDuration)
	return &Registry{
		reg:               r,
		RowsProcessed:     rowsProcessed,
		RowsSkipped:       rowsSkipped,
		FilesUnrecognized: filesUnrecognized,
		OrdersByStatus:    ordersByStatus,
		ReconcileDuration: reconcileDuration,
	}
}

// ObserveStats mirrors a reconciliation histogram into the status gauges.
func (r *Registry) ObserveStats(byStatus map[string]int) {
	for status, count := range byStatus {
		r.OrdersByStatus.WithLabelValues(status).Set(float64(count))
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
