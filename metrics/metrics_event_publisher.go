package metrics

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/seifreed/NSECGenerator/evt"
)

const namespace = "nsec3gen"

type eventCollectors struct {
	buildInfo       *prometheus.GaugeVec
	runsStarted     prometheus.Counter
	candidates      prometheus.Counter
	hashesDone      *prometheus.GaugeVec
	tableEntries    *prometheus.GaugeVec
	collisions      prometheus.Counter
	hashingDuration prometheus.Histogram
	filesWritten    prometheus.Counter
	bytesWritten    prometheus.Counter
	writeFailures   prometheus.Counter
}

func newEventCollectors() *eventCollectors {
	return &eventCollectors{
		buildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Version number and build info",
		}, []string{"version", "build_time"}),
		runsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_started_total",
			Help:      "Number of started hash runs",
		}),
		candidates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Number of candidate names submitted for hashing",
		}),
		hashesDone: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hashes_done",
			Help:      "Hashed candidates of the current run",
		}, []string{"key"}),
		tableEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_entries",
			Help:      "Number of entries in the last computed table",
		}, []string{"key"}),
		collisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hash_collisions_total",
			Help:      "Number of names dropped because another name had the same hash",
		}),
		hashingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hashing_duration_seconds",
			Help:      "Time spent computing one table",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
		filesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_files_written_total",
			Help:      "Number of stored tables",
		}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Size of all stored tables",
		}),
		writeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_write_failures_total",
			Help:      "Number of tables that could not be stored",
		}),
	}
}

func (c *eventCollectors) register(r prometheus.Registerer) {
	for _, m := range []prometheus.Collector{
		c.buildInfo, c.runsStarted, c.candidates, c.hashesDone, c.tableEntries,
		c.collisions, c.hashingDuration, c.filesWritten, c.bytesWritten, c.writeFailures,
	} {
		_ = r.Register(m)
	}
}

func (c *eventCollectors) subscribe(bus EventBus.Bus) error {
	handlers := map[string]interface{}{
		evt.ApplicationStarted: func(version, buildTime string) {
			c.buildInfo.WithLabelValues(version, buildTime).Set(1)
		},
		evt.HashingStarted: func(key string, count int) {
			c.runsStarted.Inc()
			c.candidates.Add(float64(count))
			c.hashesDone.WithLabelValues(key).Set(0)
		},
		evt.HashingProgress: func(key string, done, _ int) {
			c.hashesDone.WithLabelValues(key).Set(float64(done))
		},
		evt.HashingFinished: func(key string, entries, collisions int, seconds float64) {
			c.tableEntries.WithLabelValues(key).Set(float64(entries))
			c.collisions.Add(float64(collisions))
			c.hashingDuration.Observe(seconds)
		},
		evt.CacheFileWritten: func(_, _ string, size int64) {
			c.filesWritten.Inc()
			c.bytesWritten.Add(float64(size))
		},
		evt.CacheFileFailed: func(_ string, _ error) {
			c.writeFailures.Inc()
		},
	}

	for topic, fn := range handlers {
		if err := bus.Subscribe(topic, fn); err != nil {
			return fmt.Errorf("can't subscribe topic '%s': %w", topic, err)
		}
	}

	return nil
}
