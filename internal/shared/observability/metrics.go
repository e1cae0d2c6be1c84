package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	TypesProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docfixer_types_processed_total",
		Help: "Total number of contract types visited by the synthesis pass.",
	})

	MembersProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docfixer_members_processed_total",
		Help: "Total number of members whose documentation node was found, by classification.",
	}, []string{"kind"})

	SkipsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docfixer_skips_total",
		Help: "Total number of synthesis steps skipped, by reason.",
	}, []string{"reason"})

	MergedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docfixer_corpus_merged_total",
		Help: "Total number of members whose prose was merged from the external corpus.",
	})

	EventsSynthesizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docfixer_events_synthesized_total",
		Help: "Total number of event delegate members documented.",
	})

	DocumentsSavedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docfixer_documents_saved_total",
		Help: "Total number of documentation files written, by tree kind.",
	}, []string{"kind"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docfixer_watcher_events_total",
		Help: "Total number of file system events seen in watch mode.",
	})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "docfixer_run_seconds",
		Help:    "Wall time of a full synthesis run.",
		Buckets: prometheus.DefBuckets,
	})
)

// WriteTextfile dumps the default registry in the text exposition format,
// for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
