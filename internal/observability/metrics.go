package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StageGenerate = "generate"
	StageExport   = "export"
	StagePlan     = "plan"
	StagePrepare  = "prepare"
)

var (
	registerOnce sync.Once

	floorsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "minegen",
			Subsystem: "run",
			Name:      "floors_total",
			Help:      "Floors generated and exported.",
		},
	)
	quotaUnits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "minegen",
			Subsystem: "run",
			Name:      "quota_units_total",
			Help:      "Quota units distributed across floors.",
		},
		[]string{"kind"},
	)
	blocksGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "minegen",
			Subsystem: "floor",
			Name:      "blocks_total",
			Help:      "Occupied blocks across generated geological shapes.",
		},
	)
	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "minegen",
			Subsystem: "floor",
			Name:      "stage_duration_seconds",
			Help:      "Per-floor stage duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
	removedArtifacts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "minegen",
			Subsystem: "output",
			Name:      "removed_artifacts_total",
			Help:      "Stale artifacts removed while preparing the output directory.",
		},
	)
	runFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "minegen",
			Subsystem: "run",
			Name:      "failures_total",
			Help:      "Runs aborted, by failing stage.",
		},
		[]string{"stage"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(floorsGenerated, quotaUnits, blocksGenerated, stageDuration, removedArtifacts, runFailures)
	})
}

func RecordPlan(shapes, drills int) {
	RegisterMetrics()
	quotaUnits.WithLabelValues("shapes").Add(float64(shapes))
	quotaUnits.WithLabelValues("drillholes").Add(float64(drills))
}

func RecordFloor(blocks int, generate, export time.Duration) {
	RegisterMetrics()
	floorsGenerated.Inc()
	blocksGenerated.Add(float64(blocks))
	stageDuration.WithLabelValues(StageGenerate).Observe(generate.Seconds())
	stageDuration.WithLabelValues(StageExport).Observe(export.Seconds())
}

func RecordCleanup(removed int) {
	RegisterMetrics()
	removedArtifacts.Add(float64(removed))
}

func RecordFailure(stage string) {
	RegisterMetrics()
	runFailures.WithLabelValues(stage).Inc()
}

// WriteTextfile dumps every registered metric in the text exposition format.
func WriteTextfile(path string) error {
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
