package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"controlcompass/internal/db"
)

var (
	companyStatusDesc = prometheus.NewDesc(
		"controlcompass_companies",
		"Company listing count by status",
		[]string{"status"},
		nil,
	)
	filterUsageDesc = prometheus.NewDesc(
		"controlcompass_filter_usage_total",
		"Directory browse count by filter dimension",
		[]string{"filter"},
		nil,
	)
)

// DirectoryCollector is a custom Prometheus collector that reads listing
// and filter usage counts from the database on each scrape.
type DirectoryCollector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *DirectoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- companyStatusDesc
	ch <- filterUsageDesc
}

// Collect queries the database and emits current counts.
func (c *DirectoryCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.db.CountCompaniesByStatus(context.Background())
	if err != nil {
		slog.Error("failed to collect company status metrics", "error", err)
	} else {
		for status, n := range counts {
			ch <- prometheus.MustNewConstMetric(
				companyStatusDesc,
				prometheus.GaugeValue,
				float64(n),
				status,
			)
		}
	}

	usage, err := c.db.GetAllFilterUsage(context.Background())
	if err != nil {
		slog.Error("failed to collect filter usage metrics", "error", err)
		return
	}
	for _, u := range usage {
		ch <- prometheus.MustNewConstMetric(
			filterUsageDesc,
			prometheus.CounterValue,
			float64(u.Count),
			u.Filter,
		)
	}
}

// Recorder provides async filter usage recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&DirectoryCollector{db: database})
	})
}

// RecordFilterUsage asynchronously bumps the usage counter for a filter
// dimension used on a browse request.
func RecordFilterUsage(filter string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementFilterUsage(context.Background(), filter); err != nil {
			slog.Error("failed to record filter usage", "filter", filter, "error", err)
		}
	}()
}
