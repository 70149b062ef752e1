package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the germination module.
// Tracks grid mutation counts and the matrix assembly critical path.
type Metrics struct {
	CountsCreated       prometheus.Counter
	RepetitionsExpanded prometheus.Counter
	CellsMaterialized   prometheus.Counter
	NormalUpserts       prometheus.Counter
	FinalUpserts        prometheus.Counter
	MatrixAssemblies    prometheus.Counter
	MatrixCacheHits     prometheus.Counter
	ListMatrixDuration  prometheus.Histogram
	AutoNumberConflicts prometheus.Counter
}

// New creates a Metrics instance with all germination module metrics registered.
func New() *Metrics {
	return &Metrics{
		CountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seedlab_germination_counts_created_total",
			Help: "Total number of inspection counts created",
		}),
		RepetitionsExpanded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seedlab_germination_repetitions_expanded_total",
			Help: "Total number of repetitions added via grid expansion",
		}),
		CellsMaterialized: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seedlab_germination_cells_materialized_total",
			Help: "Total number of grid cells materialized during expansion",
		}),
		NormalUpserts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seedlab_germination_normal_upserts_total",
			Help: "Total number of normal-reading upserts (data entry path)",
		}),
		FinalUpserts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seedlab_germination_final_upserts_total",
			Help: "Total number of final-reading upserts",
		}),
		MatrixAssemblies: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seedlab_germination_matrix_assemblies_total",
			Help: "Total number of matrix summaries assembled from stores",
		}),
		MatrixCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seedlab_germination_matrix_cache_hits_total",
			Help: "Total number of matrix reads served from cache",
		}),
		ListMatrixDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "seedlab_germination_list_matrix_duration_seconds",
			Help:    "Duration of matrix assembly (read-side critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		AutoNumberConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seedlab_germination_auto_number_conflicts_total",
			Help: "Total number of auto-numbering races recovered via retry",
		}),
	}
}

// ObserveListMatrix records the duration of one matrix assembly.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveListMatrix(start time.Time) {
	m.ListMatrixDuration.Observe(time.Since(start).Seconds())
}
