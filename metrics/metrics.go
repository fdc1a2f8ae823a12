// Package metrics exposes hashing and cache statistics as prometheus metrics.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/seifreed/NSECGenerator/evt"
	"github.com/seifreed/NSECGenerator/log"
)

// nolint:gochecknoglobals
var (
	reg       = prometheus.NewRegistry()
	startOnce sync.Once
)

// RegisterMetric registers prometheus collector
func RegisterMetric(c prometheus.Collector) {
	_ = reg.Register(c)
}

// StartCollection registers the runtime collectors and starts listening to events.
// Calling it more than once has no effect.
func StartCollection() {
	startOnce.Do(func() {
		RegisterMetric(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		RegisterMetric(collectors.NewGoCollector())

		c := newEventCollectors()
		c.register(reg)

		if err := c.subscribe(evt.Bus()); err != nil {
			log.PrefixedLog("metrics").Fatal(err)
		}
	})
}

// WriteTextfile writes all metrics in the node_exporter textfile format
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("can't write metrics to '%s': %w", path, err)
	}

	return nil
}
