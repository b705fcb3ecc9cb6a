package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "orphan_scan_seconds",
		Help:    "Wall time for one full scan (index, extract, resolve, aggregate).",
		Buckets: prometheus.DefBuckets,
	})

	ExtractDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orphan_extract_seconds",
		Help:    "Time spent extracting import specifiers from a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	FilesScanned = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orphan_files_scanned",
		Help: "Files indexed by the most recent scan.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orphan_graph_edges",
		Help: "Resolved import edges in the most recent scan.",
	})

	OrphansFound = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orphan_files_orphaned",
		Help: "True orphans reported by the most recent scan.",
	})

	FilesSkipped = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orphan_files_skipped",
		Help: "Unreadable files skipped by the most recent scan.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orphan_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	ScansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orphan_scans_total",
		Help: "Total number of completed scans.",
	})
)
